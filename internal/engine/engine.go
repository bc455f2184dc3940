// Package engine orchestrates alert processing: admission filtering,
// trigger evaluation, cooldown checks, subscriber resolution, message
// rendering and dispatch submission.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rblake2320/New-election-countdown-sub005/internal/cooldown"
	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/filter"
	"github.com/rblake2320/New-election-countdown-sub005/internal/metrics"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

// ErrFiltered marks an event suppressed by the admission chain. This is
// a policy outcome, not a failure; callers must not retry.
var ErrFiltered = errors.New("event filtered")

// Evaluation is the ephemeral result of one trigger match. It is built,
// dispatched and discarded within a single ProcessEvent call.
type Evaluation struct {
	Trigger     *trigger.Trigger
	Context     *events.EventContext
	Subscribers []string
	Message     events.Content
	Urgency     events.Urgency
}

// Engine is the alerting core. Construct one per process with its
// collaborators and tear it down at shutdown; there is no hidden global
// instance.
type Engine struct {
	registry   *trigger.Registry
	filters    *filter.Chain
	cooldowns  cooldown.Store
	resolver   SubscriberResolver
	dispatcher Dispatcher
	collector  *metrics.Collector

	now func() time.Time
}

// New creates an engine over the given collaborators.
func New(registry *trigger.Registry, filters *filter.Chain, cooldowns cooldown.Store, resolver SubscriberResolver, dispatcher Dispatcher, collector *metrics.Collector) *Engine {
	return &Engine{
		registry:   registry,
		filters:    filters,
		cooldowns:  cooldowns,
		resolver:   resolver,
		dispatcher: dispatcher,
		collector:  collector,
		now:        time.Now,
	}
}

// AddTrigger registers a trigger. A duplicate id overwrites silently.
func (e *Engine) AddTrigger(t *trigger.Trigger) error {
	return e.registry.Add(t)
}

// RemoveTrigger deletes a trigger by id.
func (e *Engine) RemoveTrigger(id string) bool {
	return e.registry.Remove(id)
}

// Counters is the read-only admin view: volumes only, no subscriber
// identifying data.
type Counters struct {
	Triggers int              `json:"triggers"`
	Volumes  metrics.Snapshot `json:"volumes"`
}

// Counters returns the current counter snapshot.
func (e *Engine) Counters() Counters {
	return Counters{
		Triggers: e.registry.Count(),
		Volumes:  e.collector.Current(),
	}
}

// ProcessEvent runs one event through the full pipeline. It returns
// ErrFiltered when the admission chain vetoes; otherwise it returns an
// EventRecord whose priority is the maximum urgency among all fired
// triggers. A trigger that matches but resolves zero subscribers does
// not record a cooldown fire, so a later better-targeted event can
// still fire. Resolution and submission failures are logged and
// isolated; they never abort sibling triggers.
func (e *Engine) ProcessEvent(ctx context.Context, eventType string, eventData map[string]any, evctx *events.EventContext) (*events.EventRecord, error) {
	now := e.now()
	e.collector.RecordReceived()

	if !e.filters.Admit(eventType, eventData, now) {
		e.collector.RecordFiltered()
		return nil, ErrFiltered
	}

	record := &events.EventRecord{
		ID:        uuid.NewString(),
		EventType: eventType,
		Priority:  events.UrgencyLow,
		Timestamp: now,
	}
	entityKey := evctx.EntityKey()

	var fired []events.Urgency
	for _, t := range e.registry.ActiveForEvent(eventType) {
		if !trigger.EvaluateConditions(t.Conditions, eventData) {
			continue
		}

		inCooldown, err := e.cooldowns.InCooldown(ctx, t.ID, entityKey, t.Cooldown, now)
		if err != nil {
			// Fail open: a degraded cooldown store must not silence alerts.
			slog.Error("Cooldown check failed",
				"trigger_id", t.ID,
				"event_type", eventType,
				"entity_key", entityKey,
				"error", err,
			)
		}
		if inCooldown {
			e.collector.RecordCooldownSuppressed()
			slog.Debug("Trigger suppressed by cooldown",
				"trigger_id", t.ID,
				"entity_key", entityKey,
			)
			continue
		}

		subscribers, err := e.resolver.Resolve(ctx, t, evctx)
		if err != nil {
			e.collector.RecordResolutionError()
			slog.Error("Subscriber resolution failed",
				"trigger_id", t.ID,
				"event_type", eventType,
				"entity_key", entityKey,
				"error", err,
			)
			continue
		}
		if len(subscribers) == 0 {
			slog.Debug("Trigger matched but nobody affected",
				"trigger_id", t.ID,
				"event_type", eventType,
			)
			continue
		}

		eval := &Evaluation{
			Trigger:     t,
			Context:     evctx,
			Subscribers: subscribers,
			Message:     renderMessage(eventType, t.ID, eventData),
			Urgency:     t.Priority,
		}

		// The semantic fire happens here; a later submission failure does
		// not roll it back, or reprocessing would illegitimately re-fire.
		if err := e.cooldowns.MarkFired(ctx, t.ID, entityKey, t.Cooldown, now); err != nil {
			slog.Error("Failed to record cooldown fire",
				"trigger_id", t.ID,
				"entity_key", entityKey,
				"error", err,
			)
		}
		e.collector.RecordFired()
		fired = append(fired, t.Priority)

		e.dispatch(ctx, eval, eventType, now)
	}

	if len(fired) > 0 {
		record.Processed = true
		record.TriggeredCount = len(fired)
		record.Priority = events.MaxUrgency(fired...)
	}
	return record, nil
}
