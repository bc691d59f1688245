// Package debounce provides a trailing debouncer: a burst of triggers
// collapses into one call after the quiet period, and a new trigger cancels
// any pending call so at most one is scheduled at a time.
package debounce

import (
	"sync"
	"time"
)

// Trailing invokes its function once per quiet period after the last trigger.
type Trailing struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// NewTrailing creates a trailing debouncer with the given quiet period.
func NewTrailing(delay time.Duration, fn func()) *Trailing {
	return &Trailing{
		delay: delay,
		fn:    fn,
	}
}

// Trigger schedules the call, cancelling any pending one.
func (t *Trailing) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}

	t.timer = time.AfterFunc(t.delay, t.fn)
}

// Stop cancels a pending call, if any.
func (t *Trailing) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
