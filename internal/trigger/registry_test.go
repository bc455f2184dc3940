package trigger

import (
	"testing"
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

func validTrigger(id, eventType string) *Trigger {
	return &Trigger{
		ID:        id,
		Name:      "test trigger " + id,
		EventType: eventType,
		Conditions: []Condition{
			{Field: "status", Operator: OpEquals, Value: "final"},
		},
		Priority: events.UrgencyHigh,
		Cooldown: 5 * time.Minute,
		Active:   true,
	}
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(validTrigger("t1", "election_result")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, ok := r.Get("t1")
	if !ok {
		t.Fatal("Get() did not find registered trigger")
	}
	if got.EventType != "election_result" {
		t.Errorf("Get() EventType = %v, want election_result", got.EventType)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %v, want 1", r.Count())
	}
}

func TestRegistry_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		trigger *Trigger
	}{
		{
			name:    "empty id",
			trigger: &Trigger{EventType: "election_result", Priority: events.UrgencyLow},
		},
		{
			name:    "empty event type",
			trigger: &Trigger{ID: "t1", Priority: events.UrgencyLow},
		},
		{
			name:    "invalid priority",
			trigger: &Trigger{ID: "t1", EventType: "election_result", Priority: events.Urgency("severe")},
		},
		{
			name:    "negative cooldown",
			trigger: &Trigger{ID: "t1", EventType: "election_result", Priority: events.UrgencyLow, Cooldown: -time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.Add(tt.trigger); err == nil {
				t.Error("Add() error = nil, want validation error")
			}
		})
	}
}

func TestRegistry_DuplicateIDOverwrites(t *testing.T) {
	r := NewRegistry()
	first := validTrigger("t1", "election_result")
	if err := r.Add(first); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	second := validTrigger("t1", "election_result")
	second.Priority = events.UrgencyUrgent
	if err := r.Add(second); err != nil {
		t.Fatalf("Add() duplicate error = %v", err)
	}

	if r.Count() != 1 {
		t.Errorf("Count() = %v, want 1 after overwrite", r.Count())
	}
	got, _ := r.Get("t1")
	if got.Priority != events.UrgencyUrgent {
		t.Errorf("Get() Priority = %v, want urgent (whole record replaced)", got.Priority)
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(validTrigger("t1", "election_result")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if !r.Remove("t1") {
		t.Error("Remove() = false, want true for existing trigger")
	}
	if r.Remove("t1") {
		t.Error("Remove() = true, want false for missing trigger")
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %v, want 0", r.Count())
	}
}

func TestRegistry_ActiveForEvent(t *testing.T) {
	r := NewRegistry()
	active := validTrigger("t1", "election_result")
	inactive := validTrigger("t2", "election_result")
	inactive.Active = false
	other := validTrigger("t3", "breaking_news")

	for _, trig := range []*Trigger{active, inactive, other} {
		if err := r.Add(trig); err != nil {
			t.Fatalf("Add(%s) error = %v", trig.ID, err)
		}
	}

	matched := r.ActiveForEvent("election_result")
	if len(matched) != 1 {
		t.Fatalf("ActiveForEvent() returned %d triggers, want 1", len(matched))
	}
	if matched[0].ID != "t1" {
		t.Errorf("ActiveForEvent() returned %s, want t1", matched[0].ID)
	}
}

func TestRegistry_AddCopiesTrigger(t *testing.T) {
	r := NewRegistry()
	trig := validTrigger("t1", "election_result")
	if err := r.Add(trig); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Mutating the caller's copy must not affect the registered record.
	trig.Conditions[0].Value = "mutated"
	got, _ := r.Get("t1")
	if got.Conditions[0].Value != "final" {
		t.Error("Add() did not copy conditions; registry record was mutated externally")
	}
}

func TestDefaults_AllValid(t *testing.T) {
	r := NewRegistry()
	for _, trig := range Defaults() {
		if err := r.Add(trig); err != nil {
			t.Errorf("default trigger %s failed validation: %v", trig.ID, err)
		}
	}
	if r.Count() == 0 {
		t.Error("Defaults() returned no triggers")
	}
}
