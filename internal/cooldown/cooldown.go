// Package cooldown tracks when each (trigger, entity) pair last fired
// so a trigger fires at most once per cooldown window per entity.
package cooldown

import (
	"context"
	"sync"
	"time"
)

// pruneHorizon bounds how long fired entries are kept in memory. It only
// bounds memory: a window longer than the horizon would be pruned early,
// but no configured trigger comes close to 24h.
const pruneHorizon = 24 * time.Hour

// Store records trigger fires and answers cooldown checks. The memory
// implementation is the default; a redis-backed one serves multi-instance
// deployments behind the same interface.
type Store interface {
	// InCooldown reports whether the (trigger, entity) pair fired within
	// the given window before now. A zero window is never in cooldown.
	InCooldown(ctx context.Context, triggerID, entityKey string, window time.Duration, now time.Time) (bool, error)

	// MarkFired records a fire at now for the pair. The window lets
	// TTL-based implementations expire the entry server-side.
	MarkFired(ctx context.Context, triggerID, entityKey string, window time.Duration, now time.Time) error
}

func key(triggerID, entityKey string) string {
	if entityKey == "" {
		entityKey = "global"
	}
	return triggerID + ":" + entityKey
}

// MemoryStore is the in-process cooldown store. State is deliberately
// not persisted: a restart clears it, costing at most one duplicate
// notification burst.
type MemoryStore struct {
	mu        sync.Mutex
	lastFired map[string]time.Time
}

// NewMemoryStore creates an empty in-memory cooldown store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lastFired: make(map[string]time.Time),
	}
}

// InCooldown implements Store.
func (s *MemoryStore) InCooldown(_ context.Context, triggerID, entityKey string, window time.Duration, now time.Time) (bool, error) {
	if window <= 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastFired[key(triggerID, entityKey)]
	if !ok {
		return false, nil
	}
	return now.Before(last.Add(window)), nil
}

// MarkFired implements Store.
func (s *MemoryStore) MarkFired(_ context.Context, triggerID, entityKey string, _ time.Duration, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFired[key(triggerID, entityKey)] = now
	return nil
}

// Prune removes entries older than the prune horizon. Called by the
// background sweeper; holds the same lock as checks so an in-flight
// evaluation never races a removal.
func (s *MemoryStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	cutoff := now.Add(-pruneHorizon)
	for k, fired := range s.lastFired {
		if fired.Before(cutoff) {
			delete(s.lastFired, k)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked entries.
func (s *MemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lastFired)
}
