// Package filter implements the stateful admission chain applied to
// every event before trigger evaluation. Filters suppress notification
// spam independent of trigger logic; a veto is a policy outcome, not an
// error, and callers must not retry.
package filter

import (
	"log/slog"
	"time"
)

// statePruneHorizon bounds per-entity filter state. Stale status records
// and rate windows older than this are swept out.
const statePruneHorizon = 2 * time.Hour

// Filter is one named admission check. Admit may record state; it is
// called at most once per event per chain pass.
type Filter interface {
	Name() string
	Admit(eventType string, eventData map[string]any, now time.Time) bool
	Prune(now time.Time) int
}

// Chain applies an ordered set of filters. The chain admits an event
// only when every filter does.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain over the given filters, applied in order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// DefaultChain returns the chain used by the alerting core: duplicate
// status suppression, minor-update rate limiting and breaking-news
// verification gating.
func DefaultChain() *Chain {
	return NewChain(
		NewDuplicateStatusFilter("election_status_change", "candidate_update"),
		NewRateLimitFilter(),
		NewVerificationGateFilter(),
	)
}

// Admit reports whether the event passes every filter.
func (c *Chain) Admit(eventType string, eventData map[string]any, now time.Time) bool {
	for _, f := range c.filters {
		if !f.Admit(eventType, eventData, now) {
			slog.Info("Event vetoed by filter",
				"filter", f.Name(),
				"event_type", eventType,
				"entity_id", entityID(eventData),
			)
			return false
		}
	}
	return true
}

// Prune sweeps expired state out of every filter and returns the total
// number of removed entries.
func (c *Chain) Prune(now time.Time) int {
	removed := 0
	for _, f := range c.filters {
		removed += f.Prune(now)
	}
	return removed
}

// entityID extracts the entity identifier filters key their state by.
// Events without one share the "global" bucket.
func entityID(eventData map[string]any) string {
	if id, ok := eventData["entity_id"].(string); ok && id != "" {
		return id
	}
	return "global"
}

func stringField(eventData map[string]any, field string) string {
	s, _ := eventData[field].(string)
	return s
}
