package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/domain"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// BookmarkHandler — обработчик HTTP-запросов для закладок.
type BookmarkHandler struct {
	bookmarkUseCase usecase.BookmarkUseCase
	logger          *slog.Logger
}

// NewBookmarkHandler создаёт новый экземпляр BookmarkHandler.
func NewBookmarkHandler(uc usecase.BookmarkUseCase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUseCase: uc,
		logger:          logger,
	}
}

// Add — сохранение препарата в закладки текущего пользователя:
// POST /bookmark с полями результата поиска.
func (h *BookmarkHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireLogin(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	var form BookmarkForm
	if err := decodeForm(r, &form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректные данные формы", h.logger)
		return
	}

	if fieldErrors := validateForm(&form); fieldErrors != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors}, h.logger)
		return
	}

	bookmark, err := h.bookmarkUseCase.Add(r.Context(), userID, domain.DrugRecord{
		BrandName:        form.BrandName,
		GenericName:      form.GenericName,
		ActiveIngredient: form.ActiveIngredient,
		Purpose:          form.Purpose,
		Warnings:         form.Warnings,
		Indications:      form.Indications,
		Dosage:           form.Dosage,
		AdverseReactions: form.AdverseReactions,
		Storage:          form.Storage,
	})
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Препарат сохранен в закладки",
		"bookmark": bookmark,
	}, h.logger)
}

// Remove — удаление закладки её владельцем: POST /bookmark/{id}/remove.
func (h *BookmarkHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireLogin(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	bookmarkID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректный идентификатор закладки", h.logger)
		return
	}

	if err := h.bookmarkUseCase.Remove(r.Context(), bookmarkID, userID); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Закладка удалена"}, h.logger)
}
