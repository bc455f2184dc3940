// Package events defines the core event and notification types shared by
// the alerting engine and its domain adapters.
package events

import "time"

// EventContext carries identifiers of the entities an event relates to.
// Entities are referenced by id only, never owned; a context lives for a
// single ProcessEvent call and is discarded afterwards.
type EventContext struct {
	ElectionID  string            `json:"election_id,omitempty"`
	CandidateID string            `json:"candidate_id,omitempty"`
	ResultID    string            `json:"result_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Source      string            `json:"source"`
}

// EntityKey returns the cooldown/filter key for the context's primary
// entity. Falls back to "global" when the event is not entity-scoped.
func (c *EventContext) EntityKey() string {
	if c == nil {
		return "global"
	}
	switch {
	case c.CandidateID != "":
		return "candidate:" + c.CandidateID
	case c.ElectionID != "":
		return "election:" + c.ElectionID
	case c.ResultID != "":
		return "result:" + c.ResultID
	}
	return "global"
}

// EntityIDs returns all non-empty entity identifiers for logging and
// notification metadata.
func (c *EventContext) EntityIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, 3)
	if c.ElectionID != "" {
		ids = append(ids, c.ElectionID)
	}
	if c.CandidateID != "" {
		ids = append(ids, c.CandidateID)
	}
	if c.ResultID != "" {
		ids = append(ids, c.ResultID)
	}
	return ids
}

// EventRecord summarizes the outcome of processing one event.
type EventRecord struct {
	ID             string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	Priority       Urgency   `json:"priority"`
	Processed      bool      `json:"processed"`
	TriggeredCount int       `json:"triggered_count"`
	Timestamp      time.Time `json:"timestamp"`
}

// Content is the rendered body of a notification request.
type Content struct {
	Subject      string            `json:"subject"`
	Message      string            `json:"message"`
	TemplateData map[string]string `json:"template_data,omitempty"`
}

// Metadata identifies the trigger match a notification request came from.
type Metadata struct {
	SubscriberID string   `json:"subscriber_id"`
	TriggerID    string   `json:"trigger_id"`
	EventType    string   `json:"event_type"`
	EntityIDs    []string `json:"entity_ids,omitempty"`
}

// NotificationRequest is one channel-addressed delivery request handed to
// the external dispatcher. Delivery mechanics (sending, retries beyond
// the budget) belong to the dispatcher.
type NotificationRequest struct {
	ID                    string    `json:"request_id"`
	Channel               string    `json:"channel"`
	Priority              Urgency   `json:"priority"`
	RecipientAddress      string    `json:"recipient_address"`
	Content               Content   `json:"content"`
	Metadata              Metadata  `json:"metadata"`
	RetryBudget           int       `json:"retry_budget"`
	ScheduledDeliveryTime time.Time `json:"scheduled_delivery_time"`
}
