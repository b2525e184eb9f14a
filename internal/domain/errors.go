package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist —
// an unknown package slug, blog slug, or database row.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned when the catalog or blog store has not loaded,
// either because the initial fetch failed or a reload is in flight.
// Handlers should map this to HTTP 503 — distinct from an empty result set.
var ErrUnavailable = errors.New("unavailable")
