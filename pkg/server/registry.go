package server

import (
	"sync"
	"time"

	"github.com/marquee-dev/marquee/pkg/protocol"
)

// sessionRegistry tracks live sessions by ID.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*Session)}
}

func (r *sessionRegistry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *sessionRegistry) get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// all returns a snapshot of live sessions. Close is never called under
// the registry lock; Close re-enters the registry through onClose.
func (r *sessionRegistry) all() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *sessionRegistry) closeAll(reason protocol.CloseReason, message string) {
	for _, s := range r.all() {
		s.Close(reason, message)
	}
}

// sweepIdle closes sessions idle for longer than the limit and returns
// how many were closed.
func (r *sessionRegistry) sweepIdle(limit time.Duration) int {
	if limit <= 0 {
		return 0
	}
	var closed int
	for _, s := range r.all() {
		if s.IdleFor() > limit {
			s.Close(protocol.CloseIdleTimeout, "session idle")
			closed++
		}
	}
	return closed
}
