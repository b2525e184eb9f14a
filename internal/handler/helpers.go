package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// pagination is the page metadata block on every paged admin response.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// paginationParams reads ?page= and ?limit=, falling back to the domain
// defaults for anything absent or non-numeric.
func paginationParams(q url.Values) domain.PaginationParams {
	var page, limit *int
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		page = &n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = &n
	}
	return domain.NewPaginationParams(page, limit)
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in client payloads fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
