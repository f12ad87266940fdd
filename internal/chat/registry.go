package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry keeps one Manager per user so sessions never leak across users.
type Registry struct {
	newManager func() *Manager
	now        func() time.Time

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewRegistry creates a Registry that builds managers lazily with factory.
func NewRegistry(factory func() *Manager) *Registry {
	return &Registry{
		newManager: factory,
		now:        time.Now,
		managers:   make(map[string]*Manager),
	}
}

// Get returns the user's manager, creating an Empty one on first use.
func (r *Registry) Get(userID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[userID]
	if !ok {
		m = r.newManager()
		r.managers[userID] = m
	}
	m.touch()
	return m
}

// Lookup returns the user's manager without creating one.
func (r *Registry) Lookup(userID string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[userID]
	return m, ok
}

// Remove resets and forgets the user's manager.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	m, ok := r.managers[userID]
	delete(r.managers, userID)
	r.mu.Unlock()
	if ok {
		m.Reset()
	}
}

// Sweep evicts managers idle for longer than idle and returns how many went.
// Managers with a turn in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, m := range r.managers {
		if m.busy() || !m.LastUsed().Before(cutoff) {
			continue
		}
		m.Reset()
		delete(r.managers, id)
		evicted++
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

// StartSweeper runs Sweep(idle) every interval until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, idle, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(idle); n > 0 {
					logger.Info("evicted idle chat sessions", "count", n, "remaining", r.Len())
				}
			}
		}
	}()
}
