package events

// Urgency is the priority scale shared by triggers, event records and
// notification requests.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// urgencyRank orders urgencies for comparison: urgent > high > normal > low.
var urgencyRank = map[Urgency]int{
	UrgencyLow:    1,
	UrgencyNormal: 2,
	UrgencyHigh:   3,
	UrgencyUrgent: 4,
}

// ParseUrgency converts a string to an Urgency.
// Returns false for unknown values.
func ParseUrgency(s string) (Urgency, bool) {
	u := Urgency(s)
	_, ok := urgencyRank[u]
	return u, ok
}

// Rank returns the numeric rank of the urgency, 0 for unknown values.
func (u Urgency) Rank() int {
	return urgencyRank[u]
}

// AtLeast reports whether u is the same or more urgent than other.
func (u Urgency) AtLeast(other Urgency) bool {
	return u.Rank() >= other.Rank()
}

// MaxUrgency returns the most urgent value among the given urgencies.
// Returns UrgencyLow for an empty input.
func MaxUrgency(urgencies ...Urgency) Urgency {
	max := UrgencyLow
	for _, u := range urgencies {
		if u.Rank() > max.Rank() {
			max = u
		}
	}
	return max
}
