package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/mathbuddy/internal/session"
)

// Registry maps anonymous session IDs to practice controllers. Each entry
// serializes its own operations; distinct sessions never share state.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory func() *session.Controller
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	mu       sync.Mutex // held for the duration of one operation
	ctrl     *session.Controller
	lastSeen time.Time
	busy     int
}

// NewRegistry creates a Registry that builds controllers with factory and
// forgets sessions idle longer than ttl.
func NewRegistry(factory func() *session.Controller, ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// With runs fn with exclusive access to the controller for id, creating the
// session on first use.
func (r *Registry) With(id string, fn func(*session.Controller)) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		e = &entry{ctrl: r.factory()}
		r.entries[id] = e
		slog.Debug("practice session created", "session_id", id)
	}
	e.busy++
	e.lastSeen = r.now()
	r.mu.Unlock()

	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		r.mu.Lock()
		e.busy--
		e.lastSeen = r.now()
		r.mu.Unlock()
	}()

	fn(e.ctrl)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops sessions idle longer than the TTL and returns how many were
// removed. Sessions with an operation in flight are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.busy == 0 && e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	slog.Info("session sweeper started", "interval", interval, "ttl", r.ttl)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					slog.Info("expired idle practice sessions", "count", n, "remaining", r.Len())
				}
			case <-ctx.Done():
				slog.Info("session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
