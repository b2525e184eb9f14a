package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// ErrorDetail is the machine-readable error payload.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeError writes an ErrorResponse with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeDomainError maps the domain sentinel errors onto HTTP statuses:
// ErrNotFound → 404, ErrValidation → 422, ErrUnavailable → 503.
// Anything else is a 500; the original error is logged, never leaked.
func writeDomainError(w http.ResponseWriter, log *slog.Logger, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrUnavailable):
		// Distinct from an empty result: the catalog is not serving yet.
		// POST /catalog/reload is the manual retry.
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog is not available, try again shortly")
	default:
		log.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g.
// "service.LeadService.Submit: validation error: name is required" → "name is required".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
