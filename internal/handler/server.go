// Package handler implements the HTTP handlers for the travel catalog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (packages.go, leads.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// CatalogStore defines the catalog operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a fake without fetching any upstream feed.
type CatalogStore interface {
	Visible(category, country, query string) ([]domain.Package, error)
	BySlug(slug string) (domain.Package, error)
	Similar(slug string, limit int) ([]domain.Package, error)
	Countries() ([]string, error)
	Snapshot() ([]domain.Package, error)
	RequestReload()
}

// BlogStore defines the blog operations the handlers depend on.
type BlogStore interface {
	List(category string) ([]domain.BlogPost, error)
	BySlug(slug string) (domain.BlogPost, error)
}

// LeadServicer runs the lead intake flow and serves the admin read side:
// paginated, name-searchable listings and single-lead lookup.
type LeadServicer interface {
	Submit(ctx context.Context, lead domain.Lead) (domain.Lead, string, error)
	List(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

// NewsletterServicer records newsletter signups and lists subscribers for
// the admin screen.
type NewsletterServicer interface {
	Subscribe(ctx context.Context, email string) (domain.Subscription, error)
	List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error)
}

// FlagStore answers popup suppression queries.
type FlagStore interface {
	ShouldShow(ctx context.Context, session, name string, interval time.Duration) (bool, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	catalog    CatalogStore
	blog       BlogStore
	leads      LeadServicer
	newsletter NewsletterServicer
	flags      FlagStore
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(catalog CatalogStore, blog BlogStore, leads LeadServicer, newsletter NewsletterServicer, flags FlagStore, log *slog.Logger) *Server {
	return &Server{
		catalog:    catalog,
		blog:       blog,
		leads:      leads,
		newsletter: newsletter,
		flags:      flags,
		log:        log,
	}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Get("/packages", s.ListPackages)
	r.Get("/packages/countries", s.ListCountries)
	r.Get("/packages/{slug}", s.GetPackage)
	r.Get("/packages/{slug}/similar", s.ListSimilarPackages)
	r.Post("/catalog/reload", s.ReloadCatalog)

	r.Get("/blog", s.ListBlogPosts)
	r.Get("/blog/{slug}", s.GetBlogPost)

	r.Post("/queries", s.CreateQuery)
	r.Get("/queries", s.ListQueries)
	r.Get("/queries/{id}", s.GetQuery)
	r.Post("/newsletter", s.Subscribe)
	r.Get("/newsletter", s.ListSubscribers)

	r.Get("/popups/lead", s.GetLeadPopup)
	r.Get("/notifications/live", s.ListLiveNotifications)
}
