package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// createQueryRequest is the body of POST /queries.
type createQueryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	PackageSlug string `json:"package_slug,omitempty"`
}

// createQueryResponse carries the lead id and the WhatsApp deep link the
// client should open.
type createQueryResponse struct {
	ID          uuid.UUID `json:"id"`
	WhatsAppURL string    `json:"whatsapp_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateQuery handles POST /queries — the package query form.
//
// Validation failures are 422 with the failing field named. When the intake
// policy requires a backend ack, a failed insert is a 502 and no WhatsApp
// link is returned; otherwise the link comes back even if persistence was
// best-effort only.
func (s *Server) CreateQuery(w http.ResponseWriter, r *http.Request) {
	var req createQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	lead, waURL, err := s.leads.Submit(r.Context(), domain.Lead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		PackageSlug: req.PackageSlug,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnavailable) {
			writeDomainError(w, s.log, err, "package")
			return
		}
		s.log.Error("lead submission failed", "error", err)
		writeError(w, http.StatusBadGateway, "backend_error", "could not record your query, please try again")
		return
	}

	writeJSON(w, http.StatusCreated, createQueryResponse{
		ID:          lead.ID,
		WhatsAppURL: waURL,
		CreatedAt:   lead.CreatedAt,
	})
}

// listQueriesResponse is one page of stored leads plus its page metadata.
type listQueriesResponse struct {
	Items      []domain.Lead `json:"items"`
	Pagination pagination    `json:"pagination"`
}

// ListQueries handles GET /queries — the admin listing of package queries,
// newest first, searchable by name (?q=) and paginated (?page=&limit=).
func (s *Server) ListQueries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := paginationParams(q)

	leads, total, err := s.leads.List(r.Context(), q.Get("q"), params)
	if err != nil {
		writeDomainError(w, s.log, err, "queries")
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	writeJSON(w, http.StatusOK, listQueriesResponse{
		Items: leads,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetQuery handles GET /queries/{id}.
func (s *Server) GetQuery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "id must be a UUID")
		return
	}

	lead, err := s.leads.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, s.log, err, "query")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}
