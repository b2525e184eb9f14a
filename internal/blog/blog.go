// Package blog serves the blog content feed: read-only posts fetched from a
// static JSON upstream, filtered by category equality and looked up by slug.
// No scoring or search logic lives here — display-level filtering only.
package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tripveda/tripveda-api/internal/catalog"
	"github.com/tripveda/tripveda-api/internal/domain"
)

// Store holds an immutable snapshot of blog posts, with the same
// load-once / explicit-reload lifecycle as the catalog store.
type Store struct {
	url    string
	client *http.Client
	log    *slog.Logger

	mu     sync.RWMutex
	loaded bool
	posts  []domain.BlogPost
	bySlug map[string]domain.BlogPost
}

// NewStore constructs a Store for the given feed URL.
// A nil client falls back to a client with a 10s timeout.
func NewStore(url string, client *http.Client, log *slog.Logger) *Store {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Store{url: url, client: client, log: log}
}

// rawPost tolerates the loose date and slug handling of the feed.
type rawPost struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// Load fetches the feed synchronously and swaps in the new snapshot.
func (s *Store) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("blog.Store.Load: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("blog.Store.Load: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blog.Store.Load: upstream returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("blog.Store.Load: read body: %w", err)
	}

	var raw []rawPost
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("blog.Store.Load: decode feed: %w", err)
	}

	posts := make([]domain.BlogPost, 0, len(raw))
	bySlug := make(map[string]domain.BlogPost, len(raw))
	for _, r := range raw {
		p := domain.BlogPost{
			Slug:     r.Slug,
			Title:    r.Title,
			Excerpt:  r.Excerpt,
			Content:  r.Content,
			Author:   r.Author,
			Date:     parseDate(r.Date),
			Category: r.Category,
			Image:    r.Image,
		}
		if p.Slug == "" {
			p.Slug = catalog.Slugify(p.Title)
		}
		posts = append(posts, p)
		bySlug[p.Slug] = p
	}

	s.mu.Lock()
	s.loaded = true
	s.posts = posts
	s.bySlug = bySlug
	s.mu.Unlock()

	s.log.Info("blog loaded", "posts", len(posts))
	return nil
}

// List returns posts in feed order, optionally filtered by exact category.
func (s *Store) List(category string) ([]domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, fmt.Errorf("blog: %w", domain.ErrUnavailable)
	}
	if category == "" {
		return s.posts, nil
	}
	out := make([]domain.BlogPost, 0)
	for _, p := range s.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// BySlug returns a single post.
func (s *Store) BySlug(slug string) (domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.BlogPost{}, fmt.Errorf("blog: %w", domain.ErrUnavailable)
	}
	p, ok := s.bySlug[slug]
	if !ok {
		return domain.BlogPost{}, fmt.Errorf("post %q: %w", slug, domain.ErrNotFound)
	}
	return p, nil
}

// parseDate accepts the date formats seen in the feed; zero time when none fit.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
