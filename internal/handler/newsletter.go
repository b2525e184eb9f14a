package handler

import (
	"net/http"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// subscribeRequest is the body of POST /newsletter.
type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /newsletter.
// Subscribing an email that is already on the list is idempotent and still
// answers 201 — the client only needs to know the signup took.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	sub, err := s.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		writeDomainError(w, s.log, err, "subscription")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// listSubscribersResponse is one page of subscriptions plus its page metadata.
type listSubscribersResponse struct {
	Items      []domain.Subscription `json:"items"`
	Pagination pagination            `json:"pagination"`
}

// ListSubscribers handles GET /newsletter — the admin listing of subscribers,
// newest first, searchable by email (?q=) and paginated (?page=&limit=).
func (s *Server) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := paginationParams(q)

	subs, total, err := s.newsletter.List(r.Context(), q.Get("q"), params)
	if err != nil {
		writeDomainError(w, s.log, err, "subscriptions")
		return
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}

	writeJSON(w, http.StatusOK, listSubscribersResponse{
		Items: subs,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
