package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/PharmaApp/internal/usecase"
)

// DrugHandler — обработчик HTTP-запросов поиска препаратов.
type DrugHandler struct {
	drugUseCase usecase.DrugUseCase
	logger      *slog.Logger
}

// NewDrugHandler создаёт новый экземпляр DrugHandler.
func NewDrugHandler(uc usecase.DrugUseCase, logger *slog.Logger) *DrugHandler {
	return &DrugHandler{
		drugUseCase: uc,
		logger:      logger,
	}
}

// Search — поиск по внешнему API: GET /drug_info?drug=<запрос>&page=<n>.
// Доступен и анонимным пользователям.
func (h *DrugHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("drug")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	h.logger.Info("processing drug search", "query", query, "page", page)

	searchPage, err := h.drugUseCase.Search(r.Context(), query, page)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, searchPage, h.logger)
}
