// Package repo contains all database access logic for the travel catalog API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LeadRepo defines the persistence operations for package query leads.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows it to be unit-tested with a mock.
type LeadRepo interface {
	// Create inserts a new lead and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)

	// GetByID retrieves a single lead by its UUID primary key.
	// Returns domain.ErrNotFound if no lead with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)

	// List returns one page of leads, newest first, plus the total count
	// matching the filter. A non-empty name filters by case-insensitive
	// substring match.
	List(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error)
}

// pgLeadRepo is the Postgres implementation of LeadRepo.
type pgLeadRepo struct {
	db db
}

// NewLeadRepo constructs a LeadRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLeadRepo(db db) LeadRepo {
	return &pgLeadRepo{db: db}
}

// Create inserts a new lead row and returns the full persisted record.
func (r *pgLeadRepo) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	const q = `
		INSERT INTO leads (name, email, phone, message, package_slug, package_title)
		VALUES (@name, @email, @phone, @message, @package_slug, @package_title)
		RETURNING id, name, email, phone, message, package_slug, package_title, created_at`

	args := pgx.NamedArgs{
		"name":          lead.Name,
		"email":         lead.Email,
		"phone":         lead.Phone,
		"message":       lead.Message,
		"package_slug":  lead.PackageSlug,
		"package_title": lead.PackageTitle,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("repo.LeadRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a lead by primary key.
func (r *pgLeadRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	const q = `
		SELECT id, name, email, phone, message, package_slug, package_title, created_at
		FROM leads
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("repo.LeadRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of leads ordered by created_at descending, filtered
// by name substring when name is non-empty, plus the total matching count.
func (r *pgLeadRepo) List(ctx context.Context, name string, p domain.PaginationParams) ([]domain.Lead, int64, error) {
	const q = `
		SELECT id, name, email, phone, message, package_slug, package_title, created_at
		FROM leads
		WHERE name ILIKE '%' || @name || '%'
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"name": name, "limit": p.Limit, "offset": p.Offset()}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LeadRepo.List: %w", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LeadRepo.List: scan: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.LeadRepo.List: rows: %w", err)
	}

	const countQ = `SELECT COUNT(*) FROM leads WHERE name ILIKE '%' || @name || '%'`
	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"name": name}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LeadRepo.List: count: %w", err)
	}

	return leads, total, nil
}

// scanLead maps one row onto a domain.Lead.
// pgx.ErrNoRows is translated to domain.ErrNotFound here so callers never
// see driver-level errors.
func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message,
		&l.PackageSlug, &l.PackageTitle, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}
