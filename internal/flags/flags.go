// Package flags is the session flags store: per-session booleans with an
// expiry, used to suppress repeat display of popups and loaders. The UI
// never touches ambient storage itself — it asks this service whether it
// should show something, and the act of asking stamps the flag.
package flags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records "seen at" flags in Redis with a TTL equal to the
// suppression interval, so flags expire on their own and re-showing needs
// no cleanup job.
type Store struct {
	rdb *redis.Client
}

// NewStore constructs a Store backed by the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// ShouldShow reports whether the named element should be shown to the given
// session. The first call inside any interval window returns true and
// stamps the flag; subsequent calls return false until the interval passes.
//
// SetNX makes check-and-stamp a single atomic operation, so two concurrent
// requests from the same session cannot both see true.
func (s *Store) ShouldShow(ctx context.Context, session, name string, interval time.Duration) (bool, error) {
	key := fmt.Sprintf("flags:%s:%s", session, name)
	ok, err := s.rdb.SetNX(ctx, key, time.Now().Unix(), interval).Result()
	if err != nil {
		return false, fmt.Errorf("flags.Store.ShouldShow: %w", err)
	}
	return ok, nil
}

// Clear removes the flag so the element shows again on the next ask.
func (s *Store) Clear(ctx context.Context, session, name string) error {
	key := fmt.Sprintf("flags:%s:%s", session, name)
	if err := s.rdb.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("flags.Store.Clear: %w", err)
	}
	return nil
}
