package handlers

import (
	"errors"
	"net/http"

	"phonebook/internal/models"
	"phonebook/internal/services"
)

// StatusFor maps a store error to an HTTP status. It is shared with the
// Lambda adapter so both transports answer alike.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrValidation), errors.Is(err, services.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStorageUnavailable), errors.Is(err, services.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse builds the envelope for err. Server-side failures get a
// generic message so driver details stay in the logs.
func ErrorResponse(err error, action string) (int, *models.APIResponse) {
	status := StatusFor(err)

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return status, models.NewValidationResponse(validationErr)
	}

	switch status {
	case http.StatusNotFound:
		return status, models.NewErrorResponse("Contact not found")
	case http.StatusBadRequest:
		return status, models.NewErrorResponse(err.Error())
	case http.StatusServiceUnavailable:
		return status, models.NewErrorResponse("Failed to " + action + ": service unavailable")
	default:
		return status, models.NewErrorResponse("Failed to " + action)
	}
}
