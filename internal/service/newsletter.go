package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripveda/tripveda-api/internal/domain"
	"github.com/tripveda/tripveda-api/internal/repo"
)

// NewsletterService implements newsletter signups.
// Emails are lowercased before storage so the unique index treats
// "Jo@Example.com" and "jo@example.com" as the same subscriber.
type NewsletterService struct {
	subs repo.NewsletterRepo
}

// NewNewsletterService constructs a NewsletterService backed by the provided repo.
func NewNewsletterService(subs repo.NewsletterRepo) *NewsletterService {
	return &NewsletterService{subs: subs}
}

// Subscribe validates the email and upserts the subscription.
// Subscribing an address that is already on the list is a no-op that
// returns the existing subscription.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (domain.Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Subscription{}, fmt.Errorf("service.NewsletterService.Subscribe: %w: email is required", domain.ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return domain.Subscription{}, fmt.Errorf("service.NewsletterService.Subscribe: %w: invalid email address", domain.ErrValidation)
	}

	sub, err := s.subs.Subscribe(ctx, email)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("service.NewsletterService.Subscribe: %w", err)
	}
	return sub, nil
}

// List returns one page of subscriptions for the admin screen, newest first,
// optionally filtered by email substring.
func (s *NewsletterService) List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Subscription, int64, error) {
	subs, total, err := s.subs.List(ctx, strings.TrimSpace(email), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.NewsletterService.List: %w", err)
	}
	return subs, total, nil
}
