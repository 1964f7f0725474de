package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

// errorResponse повторяет формат ошибок исходного API: {"status":"error","message":...}.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeError переводит доменную ошибку в HTTP-статус и JSON-ответ.
// Все бизнес-ошибки валидации отдаются как 400; инфраструктурные сбои — как 500.
func writeError(w http.ResponseWriter, logger *log.Entry, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrOrderNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		logger.WithError(err).Error("request failed")
	}

	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
