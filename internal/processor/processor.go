// Package processor adapts domain events (election status and results,
// candidate updates, breaking news, system incidents) into the generic
// alert shape and runs them through the engine. Adapters reject, they
// never retry; retry policy belongs to the caller.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/engine"
	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

// ErrNotCritical marks an event below the family's alerting threshold.
// Like a filter veto this is a policy outcome, not a failure.
var ErrNotCritical = errors.New("event not critical enough")

// Election is the slice of the election record the adapters need.
// Owned by the external data store; referenced here by value.
type Election struct {
	ID    string    `json:"election_id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Level string    `json:"level"`
}

// Candidate is the slice of the candidate record the adapters need.
type Candidate struct {
	ID     string `json:"candidate_id"`
	Name   string `json:"name"`
	Party  string `json:"party"`
	Status string `json:"status"`
}

// Processor turns raw domain events into engine calls.
type Processor struct {
	engine *engine.Engine
	now    func() time.Time
}

// New creates a processor over the given engine.
func New(eng *engine.Engine) *Processor {
	return &Processor{engine: eng, now: time.Now}
}

// electionEventTypes maps election update types to the generic alert
// event type and its baseline priority.
var electionEventTypes = map[string]struct {
	alertType string
	priority  events.Urgency
}{
	"status_change":     {"election_status_change", events.UrgencyNormal},
	"result_update":     {"election_result", events.UrgencyHigh},
	"deadline_reminder": {"deadline_reminder", events.UrgencyNormal},
	"date_change":       {"election_update", events.UrgencyHigh},
	"info_update":       {"election_update", events.UrgencyLow},
}

// ProcessElectionEvent handles status, result, deadline and info events
// for one election. The payload is enriched with denormalized display
// fields before evaluation.
func (p *Processor) ProcessElectionEvent(ctx context.Context, election Election, eventData map[string]any) (*events.EventRecord, error) {
	updateType, _ := eventData["type"].(string)
	mapping, ok := electionEventTypes[updateType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown election update type %q", ErrNotCritical, updateType)
	}

	alertType := mapping.alertType
	priority := mapping.priority
	switch updateType {
	case "result_update":
		if status, _ := eventData["status"].(string); status == "final" {
			priority = events.UrgencyUrgent
		}
	case "deadline_reminder":
		if days, ok := toDays(eventData["days_until"]); ok && days <= 1 {
			priority = events.UrgencyHigh
		}
	}

	payload := p.enrich(eventData, map[string]any{
		"entity_id":      election.ID,
		"title":          election.Title,
		"election_date":  election.Date.Format("2006-01-02"),
		"level":          election.Level,
		"baseline":       string(priority),
	})

	evctx := &events.EventContext{
		ElectionID: election.ID,
		Timestamp:  p.now(),
		Source:     "election",
	}
	return p.engine.ProcessEvent(ctx, alertType, payload, evctx)
}

// candidateEventTypes maps candidate update types to baseline priority.
var candidateEventTypes = map[string]events.Urgency{
	"status_change":  events.UrgencyNormal,
	"withdrawal":     events.UrgencyHigh,
	"poll_update":    events.UrgencyNormal,
	"profile_update": events.UrgencyLow,
}

// ProcessCandidateEvent handles updates about one candidate within an
// election.
func (p *Processor) ProcessCandidateEvent(ctx context.Context, candidate Candidate, election Election, eventData map[string]any) (*events.EventRecord, error) {
	updateType, _ := eventData["update_type"].(string)
	priority, ok := candidateEventTypes[updateType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown candidate update type %q", ErrNotCritical, updateType)
	}

	payload := p.enrich(eventData, map[string]any{
		"entity_id":     candidate.ID,
		"title":         fmt.Sprintf("%s (%s)", candidate.Name, candidate.Party),
		"election_id":   election.ID,
		"election_date": election.Date.Format("2006-01-02"),
		"baseline":      string(priority),
	})

	evctx := &events.EventContext{
		ElectionID:  election.ID,
		CandidateID: candidate.ID,
		Timestamp:   p.now(),
		Source:      "candidate",
	}
	return p.engine.ProcessEvent(ctx, "candidate_update", payload, evctx)
}

// ProcessBreakingNewsEvent handles newsroom events. News below "normal"
// urgency is rejected as not critical enough; urgent unverified news is
// vetoed by the filter chain regardless of anything else.
func (p *Processor) ProcessBreakingNewsEvent(ctx context.Context, eventData map[string]any) (*events.EventRecord, error) {
	urgency, _ := eventData["urgency"].(string)
	u, ok := events.ParseUrgency(urgency)
	if !ok || !u.AtLeast(events.UrgencyNormal) {
		return nil, fmt.Errorf("%w: breaking news urgency %q", ErrNotCritical, urgency)
	}

	payload := p.enrich(eventData, map[string]any{
		"baseline": string(u),
	})

	evctx := &events.EventContext{
		Timestamp: p.now(),
		Source:    "newsroom",
	}
	if id, ok := eventData["election_id"].(string); ok {
		evctx.ElectionID = id
		payload["entity_id"] = id
	}
	return p.engine.ProcessEvent(ctx, "breaking_news", payload, evctx)
}

// systemSeverities maps incident severities to baseline priority.
// Anything absent is below the alerting threshold.
var systemSeverities = map[string]events.Urgency{
	"critical": events.UrgencyUrgent,
	"major":    events.UrgencyHigh,
}

// ProcessSystemEvent handles platform incident events.
func (p *Processor) ProcessSystemEvent(ctx context.Context, eventData map[string]any) (*events.EventRecord, error) {
	severity, _ := eventData["severity"].(string)
	priority, ok := systemSeverities[severity]
	if !ok {
		return nil, fmt.Errorf("%w: system incident severity %q", ErrNotCritical, severity)
	}

	payload := p.enrich(eventData, map[string]any{
		"baseline": string(priority),
	})

	evctx := &events.EventContext{
		Timestamp: p.now(),
		Source:    "system",
	}
	return p.engine.ProcessEvent(ctx, "system_incident", payload, evctx)
}

// enrich copies the raw payload and layers denormalized display fields
// plus the processing timestamp on top. The raw event is never mutated.
func (p *Processor) enrich(eventData, extra map[string]any) map[string]any {
	payload := make(map[string]any, len(eventData)+len(extra)+1)
	for k, v := range eventData {
		payload[k] = v
	}
	for k, v := range extra {
		payload[k] = v
	}
	payload["processed_at"] = p.now().UTC().Format(time.RFC3339)
	return payload
}

func toDays(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
