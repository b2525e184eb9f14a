package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// NewsletterRepo defines the persistence operations for newsletter signups.
type NewsletterRepo interface {
	// Subscribe inserts a subscription by email, or returns the existing
	// subscription if the email is already on the list.
	Subscribe(ctx context.Context, email string) (domain.Subscription, error)

	// List returns one page of subscriptions, newest first, plus the total
	// count matching the filter. A non-empty email filters by
	// case-insensitive substring match.
	List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error)
}

// pgNewsletterRepo is the Postgres implementation of NewsletterRepo.
type pgNewsletterRepo struct {
	db db
}

// NewNewsletterRepo constructs a NewsletterRepo backed by the provided db connection.
func NewNewsletterRepo(db db) NewsletterRepo {
	return &pgNewsletterRepo{db: db}
}

// Subscribe inserts a subscription or returns the existing row on email
// conflict. The DO UPDATE SET trick forces the RETURNING clause to fire
// even when the conflict handler skips the insert — without it, RETURNING
// returns nothing on DO NOTHING conflicts.
func (r *pgNewsletterRepo) Subscribe(ctx context.Context, email string) (domain.Subscription, error) {
	const q = `
		INSERT INTO newsletter_subscriptions (email)
		VALUES (@email)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanSubscription(row)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("repo.NewsletterRepo.Subscribe: %w", err)
	}
	return result, nil
}

// List returns one page of subscriptions ordered by created_at descending,
// filtered by email substring when email is non-empty, plus the total
// matching count.
func (r *pgNewsletterRepo) List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error) {
	const q = `
		SELECT id, email, created_at
		FROM newsletter_subscriptions
		WHERE email ILIKE '%' || @email || '%'
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"email": email, "limit": p.Limit, "offset": p.Offset()}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.NewsletterRepo.List: %w", err)
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.NewsletterRepo.List: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.NewsletterRepo.List: rows: %w", err)
	}

	const countQ = `SELECT COUNT(*) FROM newsletter_subscriptions WHERE email ILIKE '%' || @email || '%'`
	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"email": email}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.NewsletterRepo.List: count: %w", err)
	}

	return subs, total, nil
}

// scanSubscription maps one row onto a domain.Subscription.
func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.Email, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscription{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Subscription{}, err
	}
	return s, nil
}
