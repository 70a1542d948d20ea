package rest

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteFieldError - ошибка, привязанная к полю формы.
func WriteFieldError(w http.ResponseWriter, statusCode int, field, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message, Field: field})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeBody проверяет тело запроса по схеме и только потом раскладывает его в dst.
func decodeBody(r *http.Request, schema string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidationError("body", "failed to read request body")
	}
	if err := contracts.ValidateRequest(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// writeUseCaseError переводит ошибку ядра в HTTP-ответ.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.Warn("Request rejected by validation", port.Fields{"field": vErr.Field, "error": vErr.Message})
		WriteFieldError(w, http.StatusBadRequest, vErr.Field, vErr.Message)
	case errors.Is(err, domain.ErrAddressNotFound):
		logger.Warn("Address could not be geocoded", nil)
		WriteFieldError(w, http.StatusUnprocessableEntity, "address", constants.AddressNotFoundMessage)
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrGeocoding):
		logger.Error("Geocoder is unavailable", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Address lookup is temporarily unavailable. Please try again.")
	case errors.Is(err, domain.ErrEmailInUse):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrSessionNotFound):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("Use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
