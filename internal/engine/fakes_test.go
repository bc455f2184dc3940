package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

// fakeResolver resolves from a fixed map of trigger id -> subscriber ids.
type fakeResolver struct {
	mu          sync.Mutex
	subscribers map[string][]string
	failFor     map[string]bool
	addresses   map[string]string // subscriberID/channel -> address
	resolved    []string          // trigger ids resolved, in order
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		subscribers: make(map[string][]string),
		failFor:     make(map[string]bool),
		addresses:   make(map[string]string),
	}
}

func (r *fakeResolver) Resolve(_ context.Context, t *trigger.Trigger, _ *events.EventContext) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, t.ID)
	if r.failFor[t.ID] {
		return nil, fmt.Errorf("subscription service unavailable")
	}
	return r.subscribers[t.ID], nil
}

func (r *fakeResolver) Address(_ context.Context, subscriberID, channel string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if addr, ok := r.addresses[subscriberID+"/"+channel]; ok {
		return addr, nil
	}
	// Default: derive a plausible address for any channel.
	return subscriberID + "@" + channel, nil
}

// fakeDispatcher records submitted batches.
type fakeDispatcher struct {
	mu      sync.Mutex
	batches [][]events.NotificationRequest
	err     error
}

func (d *fakeDispatcher) SubmitBulk(_ context.Context, requests []events.NotificationRequest) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.batches = append(d.batches, requests)
	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}
	return ids, nil
}

func (d *fakeDispatcher) allRequests() []events.NotificationRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	var all []events.NotificationRequest
	for _, batch := range d.batches {
		all = append(all, batch...)
	}
	return all
}
