// Package service contains the business logic for the travel catalog API.
// Services validate inputs, enforce intake policy, and orchestrate repo and
// outbound-channel calls. No SQL and no HTTP lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripveda/tripveda-api/internal/domain"
	"github.com/tripveda/tripveda-api/internal/notify"
	"github.com/tripveda/tripveda-api/internal/repo"
)

// Validation patterns match the query form: a liberal email shape and a
// phone of at least ten digits/punctuation characters.
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-+()]{10,}$`)
)

// PackageFinder resolves a package slug to its record. Implemented by
// catalog.Store; defined here so the service can be tested without a store.
type PackageFinder interface {
	BySlug(slug string) (domain.Package, error)
}

// SheetAppender forwards a lead row to the spreadsheet webhook.
// Implemented by notify.SheetClient.
type SheetAppender interface {
	Enabled() bool
	Append(ctx context.Context, lead domain.Lead) error
}

// LeadService implements the lead intake flow: validate, persist, forward
// to the sheet, and hand back the WhatsApp deep link.
//
// RequireBackendAck decides the open policy question of which channel is
// authoritative. When false (the default), WhatsApp is the channel of
// record: persistence and webhook failures are logged and the link is
// returned anyway, treating the backend row as best-effort analytics.
// When true, a failed insert aborts the submission.
type LeadService struct {
	leads          repo.LeadRepo
	packages       PackageFinder
	sheet          SheetAppender
	log            *slog.Logger
	whatsappNumber string
	requireAck     bool
}

// NewLeadService constructs a LeadService.
func NewLeadService(leads repo.LeadRepo, packages PackageFinder, sheet SheetAppender, log *slog.Logger, whatsappNumber string, requireAck bool) *LeadService {
	return &LeadService{
		leads:          leads,
		packages:       packages,
		sheet:          sheet,
		log:            log,
		whatsappNumber: whatsappNumber,
		requireAck:     requireAck,
	}
}

// Submit runs the full intake flow and returns the persisted lead and the
// WhatsApp deep link to open.
func (s *LeadService) Submit(ctx context.Context, lead domain.Lead) (domain.Lead, string, error) {
	if err := validateLead(lead); err != nil {
		return domain.Lead{}, "", fmt.Errorf("service.LeadService.Submit: %w", err)
	}

	// A lead tied to a package carries the package title into the sheet row
	// and the WhatsApp message. An unknown slug is a client error, not a
	// broken reference to tolerate silently.
	if lead.PackageSlug != "" {
		pkg, err := s.packages.BySlug(lead.PackageSlug)
		if err != nil {
			return domain.Lead{}, "", fmt.Errorf("service.LeadService.Submit: %w: unknown package %q", domain.ErrValidation, lead.PackageSlug)
		}
		lead.PackageTitle = pkg.Title
	}

	stored, err := s.leads.Create(ctx, lead)
	switch {
	case err != nil && s.requireAck:
		return domain.Lead{}, "", fmt.Errorf("service.LeadService.Submit: %w", err)
	case err != nil:
		s.log.Warn("lead not persisted, continuing", "error", err)
		// Keep the response well-formed even though the row never landed.
		stored = lead
		stored.ID = uuid.New()
		stored.CreatedAt = time.Now().UTC()
	}

	if s.sheet.Enabled() {
		if err := s.sheet.Append(ctx, stored); err != nil {
			s.log.Warn("sheet webhook failed", "error", err, "lead_id", stored.ID)
		}
	}

	return stored, notify.WhatsAppLink(s.whatsappNumber, stored), nil
}

// List returns one page of stored leads for the admin screen, newest first,
// optionally filtered by name substring.
func (s *LeadService) List(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error) {
	leads, total, err := s.leads.List(ctx, strings.TrimSpace(name), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LeadService.List: %w", err)
	}
	return leads, total, nil
}

// GetByID returns a single stored lead.
func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("service.LeadService.GetByID: %w", err)
	}
	return lead, nil
}

// validateLead checks the required fields and formats of a query submission.
func validateLead(lead domain.Lead) error {
	switch {
	case lead.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case lead.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case !emailRe.MatchString(lead.Email):
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	case lead.Phone == "":
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	case !phoneRe.MatchString(lead.Phone):
		return fmt.Errorf("%w: invalid phone number", domain.ErrValidation)
	case lead.Message == "":
		return fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	return nil
}
