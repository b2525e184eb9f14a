package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripveda/tripveda-api/internal/catalog"
)

// similarLimitCap bounds ?limit= on the similar endpoint so a client cannot
// request the whole catalog through the recommendation rail.
const similarLimitCap = 24

// ListPackages handles GET /packages.
// Filter state travels in the query string (?category=&country=&q=) so
// filtered views are shareable and bookmarkable. The text query is expected
// to be debounced client-side; the pipeline itself is a pure function of
// its inputs.
func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pkgs, err := s.catalog.Visible(q.Get("category"), q.Get("country"), q.Get("q"))
	if err != nil {
		writeDomainError(w, s.log, err, "packages")
		return
	}
	writeJSON(w, http.StatusOK, pkgs)
}

// ListCountries handles GET /packages/countries.
// Returns the distinct countries of international packages, for the
// secondary refinement chips.
func (s *Server) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.catalog.Countries()
	if err != nil {
		writeDomainError(w, s.log, err, "packages")
		return
	}
	if countries == nil {
		countries = []string{}
	}
	writeJSON(w, http.StatusOK, countries)
}

// GetPackage handles GET /packages/{slug}.
// An unknown slug is a 404 not-found state, never a crash.
func (s *Server) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.catalog.BySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, s.log, err, "package")
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

// ListSimilarPackages handles GET /packages/{slug}/similar.
// Returns up to ?limit= (default 6, capped) packages ranked by similarity
// to the named package, excluding the package itself.
func (s *Server) ListSimilarPackages(w http.ResponseWriter, r *http.Request) {
	limit := catalog.DefaultSimilarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "limit must be a positive integer")
			return
		}
		limit = min(n, similarLimitCap)
	}

	pkgs, err := s.catalog.Similar(chi.URLParam(r, "slug"), limit)
	if err != nil {
		writeDomainError(w, s.log, err, "package")
		return
	}
	writeJSON(w, http.StatusOK, pkgs)
}

// ReloadCatalog handles POST /catalog/reload — the manual retry action for
// a failed load. Requests are debounced so a burst of retries collapses to
// one upstream fetch; 202 means "scheduled", not "done".
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	s.catalog.RequestReload()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload scheduled"})
}

// ListLiveNotifications handles GET /notifications/live.
// Returns the booking-ticker message rotation built from live packages.
func (s *Server) ListLiveNotifications(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.catalog.Snapshot()
	if err != nil {
		writeDomainError(w, s.log, err, "packages")
		return
	}
	msgs := catalog.LiveMessages(pkgs)
	if msgs == nil {
		msgs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"messages": msgs})
}
