package cooldown

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_ZeroWindowNeverInCooldown(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 11, 3, 20, 0, 0, 0, time.UTC)

	if err := s.MarkFired(ctx, "t1", "election:e1", 0, now); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}

	in, err := s.InCooldown(ctx, "t1", "election:e1", 0, now)
	if err != nil {
		t.Fatalf("InCooldown() error = %v", err)
	}
	if in {
		t.Error("InCooldown() = true for zero window, want false")
	}
}

func TestMemoryStore_WindowBoundaries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	window := 360 * time.Minute
	t0 := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)

	if err := s.MarkFired(ctx, "t1", "election:e1", window, t0); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "just after firing", now: t0.Add(5 * time.Minute), want: true},
		{name: "just before window end", now: t0.Add(window - time.Second), want: true},
		{name: "exactly at window end", now: t0.Add(window), want: false},
		{name: "just after window end", now: t0.Add(window + time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := s.InCooldown(ctx, "t1", "election:e1", window, tt.now)
			if err != nil {
				t.Fatalf("InCooldown() error = %v", err)
			}
			if in != tt.want {
				t.Errorf("InCooldown() = %v, want %v", in, tt.want)
			}
		})
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	window := 10 * time.Minute
	now := time.Now()

	if err := s.MarkFired(ctx, "t1", "election:e1", window, now); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}

	// Different entity, same trigger.
	if in, _ := s.InCooldown(ctx, "t1", "election:e2", window, now); in {
		t.Error("InCooldown() = true for different entity, want false")
	}
	// Different trigger, same entity.
	if in, _ := s.InCooldown(ctx, "t2", "election:e1", window, now); in {
		t.Error("InCooldown() = true for different trigger, want false")
	}
	// Empty entity key maps to the global bucket.
	if err := s.MarkFired(ctx, "t3", "", window, now); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}
	if in, _ := s.InCooldown(ctx, "t3", "global", window, now); !in {
		t.Error("InCooldown() = false for global key, want true")
	}
}

func TestMemoryStore_Prune(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	if err := s.MarkFired(ctx, "old", "e1", time.Minute, now.Add(-25*time.Hour)); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}
	if err := s.MarkFired(ctx, "fresh", "e1", time.Minute, now.Add(-time.Minute)); err != nil {
		t.Fatalf("MarkFired() error = %v", err)
	}

	removed := s.Prune(now)
	if removed != 1 {
		t.Errorf("Prune() removed %d entries, want 1", removed)
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d after prune, want 1", s.Size())
	}
}
