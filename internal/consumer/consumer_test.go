package consumer

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewConsumer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
		groupID string
	}{
		{name: "no brokers", brokers: nil, topic: "events", groupID: "g"},
		{name: "no topic", brokers: []string{"localhost:9092"}, topic: "", groupID: "g"},
		{name: "no group id", brokers: []string{"localhost:9092"}, topic: "events", groupID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConsumer(tt.brokers, tt.topic, tt.groupID, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvelopeDecoding(t *testing.T) {
	raw := []byte(`{
		"family": "candidate",
		"election": {"election_id": "e1", "title": "2026 General Election"},
		"candidate": {"candidate_id": "c1", "name": "Jane Doe", "party": "IND"},
		"data": {"update_type": "status_change", "status": "withdrawn"}
	}`)

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if env.Family != "candidate" {
		t.Errorf("Family = %q, want candidate", env.Family)
	}
	if env.Election == nil || env.Election.ID != "e1" {
		t.Errorf("Election = %+v, want id e1", env.Election)
	}
	if env.Candidate == nil || env.Candidate.Name != "Jane Doe" {
		t.Errorf("Candidate = %+v, want Jane Doe", env.Candidate)
	}
	if env.Data["status"] != "withdrawn" {
		t.Errorf("Data = %v", env.Data)
	}
}

func TestRoute_RejectsMalformedEnvelopes(t *testing.T) {
	// These paths reject before touching the processor.
	c := &Consumer{}
	ctx := context.Background()

	if _, err := c.route(ctx, &Envelope{Family: "weather"}); err == nil {
		t.Error("unknown family should be rejected")
	}
	if _, err := c.route(ctx, &Envelope{Family: "election"}); err == nil {
		t.Error("election event without election record should be rejected")
	}
	if _, err := c.route(ctx, &Envelope{Family: "candidate"}); err == nil {
		t.Error("candidate event without records should be rejected")
	}
}
