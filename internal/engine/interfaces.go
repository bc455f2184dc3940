package engine

import (
	"context"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

// SubscriberResolver is the external collaborator that decides who is
// affected by a trigger match. An empty result is a valid, non-error
// outcome. Preference matching internals live behind this contract.
type SubscriberResolver interface {
	// Resolve returns the subscriber ids affected by the trigger match.
	Resolve(ctx context.Context, t *trigger.Trigger, evctx *events.EventContext) ([]string, error)

	// Address returns the recipient address for a subscriber on a channel.
	Address(ctx context.Context, subscriberID, channel string) (string, error)
}

// Dispatcher is the external collaborator that accepts generated
// notification requests. Delivery mechanics are its problem; the core
// only submits.
type Dispatcher interface {
	// SubmitBulk submits a batch of requests and returns the ids the
	// dispatcher accepted.
	SubmitBulk(ctx context.Context, requests []events.NotificationRequest) ([]string, error)
}
