package filter

import (
	"sync"
	"time"
)

const (
	// minorUpdateCap is the number of minor-severity updates admitted per
	// entity per rolling window.
	minorUpdateCap = 5
	// rateWindow is the rolling window the cap applies to.
	rateWindow = time.Hour
)

// RateLimitFilter caps minor-severity updates per entity. Major and
// critical updates are exempt: they must always reach evaluation.
type RateLimitFilter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

// NewRateLimitFilter creates the filter with empty state.
func NewRateLimitFilter() *RateLimitFilter {
	return &RateLimitFilter{
		windows: make(map[string][]time.Time),
	}
}

// Name implements Filter.
func (f *RateLimitFilter) Name() string { return "rate_limit" }

// Admit implements Filter. Only events carrying severity "minor" count
// against the window; every admitted one is recorded.
func (f *RateLimitFilter) Admit(_ string, eventData map[string]any, now time.Time) bool {
	if stringField(eventData, "severity") != "minor" {
		return true
	}
	entity := entityID(eventData)
	cutoff := now.Add(-rateWindow)

	f.mu.Lock()
	defer f.mu.Unlock()

	window := f.windows[entity]
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= minorUpdateCap {
		f.windows[entity] = kept
		return false
	}
	f.windows[entity] = append(kept, now)
	return true
}

// Prune implements Filter. Drops entities whose whole window has aged out.
func (f *RateLimitFilter) Prune(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := 0
	cutoff := now.Add(-statePruneHorizon)
	for entity, window := range f.windows {
		if len(window) == 0 || window[len(window)-1].Before(cutoff) {
			delete(f.windows, entity)
			removed++
		}
	}
	return removed
}
