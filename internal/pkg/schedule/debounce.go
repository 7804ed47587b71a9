// Package schedule provides the cancellable delayed-task primitive behind
// debounced operations. Cancellation here only stops the quiet-period wait;
// callers that dispatch work after the wait still need their own staleness
// check, since an in-flight request cannot be un-sent.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Debouncer admits at most one waiting task. Starting a new wait supersedes
// the previous one.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending chan struct{}
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Wait blocks for the quiet period and reports whether it completed. It
// returns false when a later Wait or Cancel superseded this one, or when the
// context was cancelled, in which case the caller must not proceed.
func (d *Debouncer) Wait(ctx context.Context) bool {
	d.mu.Lock()
	if d.pending != nil {
		close(d.pending)
	}
	cancel := make(chan struct{})
	d.pending = cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-cancel:
		return false
	case <-ctx.Done():
		return false
	}
}

// Cancel supersedes the waiting task, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		close(d.pending)
		d.pending = nil
	}
}
