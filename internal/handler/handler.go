package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithDomainError маппит доменные ошибки-сентинелы в HTTP-статусы.
// Авторизационные и upstream-ошибки наружу уходят только человекочитаемым
// сообщением, без внутренних деталей.
func respondWithDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		respondWithError(w, http.StatusUnauthorized, "Сначала войдите в систему", logger)
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Доступ запрещён", logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Запись не найдена", logger)
	case errors.Is(err, domain.ErrAlreadyBookmarked):
		respondWithError(w, http.StatusConflict, "Препарат уже в закладках", logger)
	case errors.Is(err, domain.ErrEmptyQuery):
		respondWithError(w, http.StatusBadRequest, "Введите название препарата", logger)
	case errors.Is(err, domain.ErrNoResults):
		respondWithError(w, http.StatusNotFound, "По запросу ничего не найдено", logger)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		respondWithError(w, http.StatusBadGateway, "Сервис информации о препаратах временно недоступен", logger)
	default:
		logger.Error("unhandled error in handler", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", logger)
	}
}
