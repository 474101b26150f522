package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError translates service-layer errors into HTTP statuses.
// Unknown errors become 500s with the message hidden from the client.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  message,
			"fields": vErr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	detail := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrInvalidRateType),
		errors.Is(err, apperrors.ErrRateOutOfRange),
		errors.Is(err, apperrors.ErrDiscountDateOutOfRange),
		errors.Is(err, apperrors.ErrDueDateOutOfRange),
		errors.Is(err, apperrors.ErrNonPositiveAmount),
		errors.Is(err, apperrors.ErrUnsupportedCurrency),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrInvoiceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrPortfolioNotActive),
		errors.Is(err, apperrors.ErrPortfolioRateInvalid),
		errors.Is(err, apperrors.ErrDataInconsistency):
		status = http.StatusConflict
	default:
		// Internal detail stays in the server log.
		log.Printf("%s: %v", message, err)
		detail = ""
	}

	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": detail,
	})
}
