package filter

import (
	"sync"
	"time"
)

// DuplicateStatusFilter vetoes status-change events that repeat the most
// recently seen status for the same entity.
type DuplicateStatusFilter struct {
	eventTypes map[string]struct{}

	mu   sync.Mutex
	seen map[string]statusRecord
}

type statusRecord struct {
	status string
	seenAt time.Time
}

// NewDuplicateStatusFilter creates the filter for the given status-change
// event types.
func NewDuplicateStatusFilter(eventTypes ...string) *DuplicateStatusFilter {
	types := make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = struct{}{}
	}
	return &DuplicateStatusFilter{
		eventTypes: types,
		seen:       make(map[string]statusRecord),
	}
}

// Name implements Filter.
func (f *DuplicateStatusFilter) Name() string { return "duplicate_status" }

// Admit implements Filter. Events outside the configured types, or
// without a status field, pass through untouched.
func (f *DuplicateStatusFilter) Admit(eventType string, eventData map[string]any, now time.Time) bool {
	if _, ok := f.eventTypes[eventType]; !ok {
		return true
	}
	status := stringField(eventData, "status")
	if status == "" {
		return true
	}
	entity := entityID(eventData)

	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.seen[entity]; ok && prev.status == status {
		return false
	}
	f.seen[entity] = statusRecord{status: status, seenAt: now}
	return true
}

// Prune implements Filter.
func (f *DuplicateStatusFilter) Prune(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := 0
	cutoff := now.Add(-statePruneHorizon)
	for entity, rec := range f.seen {
		if rec.seenAt.Before(cutoff) {
			delete(f.seen, entity)
			removed++
		}
	}
	return removed
}
