package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tripveda/tripveda-api/internal/debounce"
	"github.com/tripveda/tripveda-api/internal/domain"
)

// State describes the lifecycle of the catalog snapshot.
// Loading → {Error | Ready}; Ready is re-entered on a successful reload.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ReloadDelay is the settle window for reload requests: bursts of requests
// inside the window collapse to a single upstream fetch.
const ReloadDelay = 250 * time.Millisecond

// Store holds an immutable snapshot of the package catalog and answers all
// read queries against it. Snapshots are swapped atomically on reload; a
// failed reload keeps serving the last good snapshot.
//
// While no snapshot has ever loaded, read methods return
// domain.ErrUnavailable — callers must surface that as a distinct
// "try again" state, never as an empty result set.
type Store struct {
	src *Source
	reg *Registry
	log *slog.Logger

	mu      sync.RWMutex
	state   State
	lastErr string
	pkgs    []domain.Package
	bySlug  map[string]domain.Package
	byID    map[int64]domain.Package

	reload *debounce.Debouncer[struct{}]
}

// NewStore constructs a Store. Call Load to populate it, and Close on
// shutdown to cancel any pending debounced reload.
func NewStore(src *Source, reg *Registry, log *slog.Logger) *Store {
	s := &Store{
		src:   src,
		reg:   reg,
		log:   log,
		state: StateLoading,
	}
	s.reload = debounce.New(ReloadDelay, func(struct{}) {
		if err := s.Load(context.Background()); err != nil {
			s.log.Error("catalog reload failed", "error", err)
		}
	})
	return s
}

// Load fetches the feed synchronously and swaps in the new snapshot.
// On failure the previous snapshot (if any) keeps serving; if nothing has
// ever loaded the store enters the error state.
func (s *Store) Load(ctx context.Context) error {
	pkgs, err := s.src.Fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		if s.pkgs == nil {
			s.state = StateError
		}
		s.mu.Unlock()
		return err
	}

	bySlug := make(map[string]domain.Package, len(pkgs))
	byID := make(map[int64]domain.Package, len(pkgs))
	for _, p := range pkgs {
		bySlug[p.Slug] = p
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.state = StateReady
	s.lastErr = ""
	s.pkgs = pkgs
	s.bySlug = bySlug
	s.byID = byID
	s.mu.Unlock()

	s.log.Info("catalog loaded", "packages", len(pkgs))
	return nil
}

// RequestReload schedules a debounced reload. Returns immediately; the
// fetch happens in the background once requests settle for ReloadDelay.
func (s *Store) RequestReload() {
	s.reload.Set(struct{}{})
}

// Close cancels any pending debounced reload.
func (s *Store) Close() {
	s.reload.Stop()
}

// Status returns the current state and, in the error state, the message of
// the failed load.
func (s *Store) Status() (State, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.lastErr
}

// Snapshot returns the current catalog in feed order.
// The returned slice is shared and must not be mutated.
func (s *Store) Snapshot() ([]domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, fmt.Errorf("catalog %s: %w", s.state, domain.ErrUnavailable)
	}
	return s.pkgs, nil
}

// BySlug returns the package with the given slug.
func (s *Store) BySlug(slug string) (domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return domain.Package{}, fmt.Errorf("catalog %s: %w", s.state, domain.ErrUnavailable)
	}
	p, ok := s.bySlug[slug]
	if !ok {
		return domain.Package{}, fmt.Errorf("package %q: %w", slug, domain.ErrNotFound)
	}
	return p, nil
}

// ByID returns the package with the given legacy numeric id.
func (s *Store) ByID(id int64) (domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return domain.Package{}, fmt.Errorf("catalog %s: %w", s.state, domain.ErrUnavailable)
	}
	p, ok := s.byID[id]
	if !ok {
		return domain.Package{}, fmt.Errorf("package id %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Visible runs the composed filter pipeline over the current snapshot.
func (s *Store) Visible(category, country, query string) ([]domain.Package, error) {
	pkgs, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return Visible(s.reg, pkgs, category, country, query), nil
}

// Similar returns up to limit packages related to the package with the
// given slug, ranked by similarity score.
func (s *Store) Similar(slug string, limit int) ([]domain.Package, error) {
	target, err := s.BySlug(slug)
	if err != nil {
		return nil, err
	}
	pkgs, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return Similar(target, pkgs, limit), nil
}

// Countries returns the distinct countries of international packages in the
// current snapshot.
func (s *Store) Countries() ([]string, error) {
	pkgs, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return Countries(pkgs), nil
}
