package filter

import "time"

// VerificationGateFilter vetoes urgent breaking news that has not been
// verified. This is a hard safety rule: no other field overrides it.
type VerificationGateFilter struct{}

// NewVerificationGateFilter creates the filter. It is stateless.
func NewVerificationGateFilter() *VerificationGateFilter {
	return &VerificationGateFilter{}
}

// Name implements Filter.
func (f *VerificationGateFilter) Name() string { return "verification_gate" }

// Admit implements Filter.
func (f *VerificationGateFilter) Admit(eventType string, eventData map[string]any, _ time.Time) bool {
	if eventType != "breaking_news" {
		return true
	}
	if stringField(eventData, "urgency") != "urgent" {
		return true
	}
	verified, _ := eventData["verified"].(bool)
	return verified
}

// Prune implements Filter. No state to sweep.
func (f *VerificationGateFilter) Prune(time.Time) int { return 0 }
