package trigger

import (
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

// Defaults returns the trigger set registered at startup. Persisted
// definitions loaded from the store are applied on top and may
// overwrite these by id.
func Defaults() []*Trigger {
	return []*Trigger{
		{
			ID:        "election-result-final",
			Name:      "Election result finalized",
			EventType: "election_result",
			Conditions: []Condition{
				{Field: "status", Operator: OpEquals, Value: "final"},
			},
			Priority: events.UrgencyUrgent,
			Cooldown: 0,
			Active:   true,
		},
		{
			ID:        "election-result-update",
			Name:      "Election result updated",
			EventType: "election_result",
			Conditions: []Condition{
				{Field: "status", Operator: OpEquals, Value: "preliminary"},
				{Field: "reporting_percent", Operator: OpGreaterThan, Value: 50},
			},
			Priority: events.UrgencyHigh,
			Cooldown: 30 * time.Minute,
			Active:   true,
		},
		{
			ID:        "registration-deadline-soon",
			Name:      "Registration deadline approaching",
			EventType: "deadline_reminder",
			Conditions: []Condition{
				{Field: "deadline_type", Operator: OpEquals, Value: "registration"},
				{Field: "days_until", Operator: OpLessThan, Value: 4},
			},
			Priority: events.UrgencyHigh,
			Cooldown: 6 * time.Hour,
			Active:   true,
		},
		{
			ID:        "candidate-status-change",
			Name:      "Candidate status changed",
			EventType: "candidate_update",
			Conditions: []Condition{
				{Field: "update_type", Operator: OpEquals, Value: "status_change"},
				{Field: "status", Operator: OpNotNull},
			},
			Priority: events.UrgencyNormal,
			Cooldown: time.Hour,
			Active:   true,
		},
		{
			ID:        "breaking-news-urgent",
			Name:      "Verified urgent breaking news",
			EventType: "breaking_news",
			Conditions: []Condition{
				{Field: "urgency", Operator: OpEquals, Value: "urgent"},
				{Field: "verified", Operator: OpEquals, Value: true},
			},
			Priority: events.UrgencyUrgent,
			Cooldown: 15 * time.Minute,
			Active:   true,
		},
		{
			ID:        "system-incident-critical",
			Name:      "Critical system incident",
			EventType: "system_incident",
			Conditions: []Condition{
				{Field: "severity", Operator: OpEquals, Value: "critical"},
			},
			Priority: events.UrgencyUrgent,
			Cooldown: 10 * time.Minute,
			Active:   true,
		},
	}
}
