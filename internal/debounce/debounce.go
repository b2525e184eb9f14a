// Package debounce provides a settle-timer for rapidly changing values.
// A Debouncer delivers only the final value of a burst of updates, after the
// value has remained unchanged for the configured delay.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces calls to Set: fn receives a value only after delay has
// elapsed with no further Set. Intermediate values inside the window are
// discarded and never observed downstream.
//
// All methods are safe for concurrent use. Stop must be called on teardown so
// no pending timer fires against a consumer that is gone.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New constructs a Debouncer that delivers settled values to fn.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Set records a new value. Any value pending from an earlier Set is dropped
// and the settle window restarts.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fn(v)
		}
	})
}

// Flush delivers the pending value immediately, if any.
// It is a no-op when nothing is pending or the debouncer is stopped.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	t := d.timer
	d.mu.Unlock()
	if t != nil && t.Stop() {
		// Stop returned true, so the callback has not run; run it now by
		// resetting to zero delay.
		t.Reset(0)
	}
}

// Stop cancels any pending delivery. After Stop, Set is a no-op.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
