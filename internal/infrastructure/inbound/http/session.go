package delivery_http

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pinstack-post-page/internal/application/page"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
)

type ControllerFactory func(identity model.Identity) *page.Controller

type session struct {
	controller *page.Controller
	lastSeen   time.Time
}

// SessionRegistry maps browser sessions to their page controllers and tears
// down controllers that have been idle for longer than the ttl.
type SessionRegistry struct {
	mu            sync.Mutex
	sessions      map[string]*session
	ttl           time.Duration
	newController ControllerFactory
	log           ports.Logger
	metrics       ports.MetricsProvider
	now           func() time.Time
}

func NewSessionRegistry(ttl time.Duration, newController ControllerFactory, log ports.Logger, metrics ports.MetricsProvider) *SessionRegistry {
	return &SessionRegistry{
		sessions:      make(map[string]*session),
		ttl:           ttl,
		newController: newController,
		log:           log,
		metrics:       metrics,
		now:           time.Now,
	}
}

// Acquire returns the controller for id, creating a new session when id is
// unknown, expired or closed. The returned id is the one to hand back to the
// browser.
func (r *SessionRegistry) Acquire(id string, identity model.Identity) (string, *page.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		if !s.controller.Closed() && now.Sub(s.lastSeen) <= r.ttl {
			s.lastSeen = now
			return id, s.controller
		}
		s.controller.Close()
		delete(r.sessions, id)
	}

	newID := uuid.NewString()
	controller := r.newController(identity)
	r.sessions[newID] = &session{controller: controller, lastSeen: now}
	r.metrics.SetActiveSessions(len(r.sessions))

	r.log.Debug("Page session created", slog.String("session_id", newID))
	return newID, controller
}

// Sweep closes expired sessions and returns how many were removed.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl || s.controller.Closed() {
			s.controller.Close()
			delete(r.sessions, id)
			removed++
		}
	}
	r.metrics.SetActiveSessions(len(r.sessions))

	if removed > 0 {
		r.log.Debug("Expired page sessions removed", slog.Int("removed", removed), slog.Int("active", len(r.sessions)))
	}
	return removed
}

// Run sweeps on every interval until ctx is done, then closes every session.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.controller.Close()
		delete(r.sessions, id)
	}
	r.metrics.SetActiveSessions(0)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
