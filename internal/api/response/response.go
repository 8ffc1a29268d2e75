// Package response provides utilities for sending consistent HTTP responses.
// Error bodies always carry success=false so the front end can branch on a
// single field.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
)

// ErrorResponse represents a structured error response returned by the API.
// Details is optional and carries per-field validation messages.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// If data is nil, only the status code is sent.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Warn("failed to encode JSON response", zap.Error(err))
		}
	}
}

// RespondError sends {"success": false, "error": message}.
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// StatusFor maps a service error to its HTTP status.
//
//   - malformed symbol, period or assumptions: 400
//   - every retrieval tier failed: 502
//   - symbol rejected by the universe and anything else: 500
func StatusFor(err error) int {
	var aggErr *apperrors.AggregationError
	switch {
	case errors.Is(err, apperrors.ErrInvalidSymbol),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, apperrors.ErrInvalidAssumptions):
		return http.StatusBadRequest
	case errors.As(err, &aggErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
