// Package trigger provides declarative alert trigger definitions, the
// registry that holds them, and condition evaluation against event
// payloads.
package trigger

import (
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

// Operator identifies a condition comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpNotNull     Operator = "not_null"
	OpChanged     Operator = "changed"
)

// Condition is one field check inside a trigger. Field is a dot-path
// into the event payload ("result.status"). Previous is only consulted
// by the changed operator; nil means no prior value was supplied.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
	Previous any      `json:"previous,omitempty"`
}

// Trigger is a declarative rule: when an event of EventType arrives and
// every condition passes, fire with the given priority, at most once
// per Cooldown per entity. Triggers are replaced whole on update, never
// mutated in place.
type Trigger struct {
	ID         string           `json:"trigger_id"`
	Name       string           `json:"name"`
	EventType  string           `json:"event_type"`
	Conditions []Condition      `json:"conditions"`
	Priority   events.Urgency   `json:"priority"`
	Cooldown   time.Duration    `json:"cooldown"`
	Active     bool             `json:"active"`
}
