package behavior

import (
	"context"
	"sync"
)

// Lifecycle is the two-phase ready gate for behavior setup. Phase one is
// the host preparing the document; phase two is wiring handlers onto it.
// The gate is signalled exactly once (further signals are no-ops) and
// any number of waiters may await it.
type Lifecycle struct {
	ready chan struct{}
	once  sync.Once
}

// NewLifecycle returns an unsignalled lifecycle gate.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{ready: make(chan struct{})}
}

// SignalReady marks the document as fully prepared. Safe to call from any
// goroutine and idempotent.
func (l *Lifecycle) SignalReady() {
	l.once.Do(func() { close(l.ready) })
}

// Ready returns a channel closed once the document is ready.
func (l *Lifecycle) Ready() <-chan struct{} {
	return l.ready
}

// IsReady reports whether SignalReady has been called.
func (l *Lifecycle) IsReady() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the document is ready or ctx is done.
func (l *Lifecycle) WaitReady(ctx context.Context) error {
	select {
	case <-l.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
