package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
)

// channelsFor maps urgency to delivery channels. Urgent goes to the
// most immediate channel only; high fans out to both; everything else
// takes the least immediate channel.
func channelsFor(u events.Urgency) []string {
	switch u {
	case events.UrgencyUrgent:
		return []string{"sms"}
	case events.UrgencyHigh:
		return []string{"sms", "email"}
	default:
		return []string{"email"}
	}
}

// deliveryDelayFor maps urgency to the scheduled delivery offset.
func deliveryDelayFor(u events.Urgency) time.Duration {
	switch u {
	case events.UrgencyUrgent:
		return 0
	case events.UrgencyHigh:
		return 2 * time.Minute
	case events.UrgencyNormal:
		return 5 * time.Minute
	default:
		return 15 * time.Minute
	}
}

// retryBudgetFor maps urgency to the dispatcher retry budget.
func retryBudgetFor(u events.Urgency) int {
	if u == events.UrgencyUrgent {
		return 5
	}
	return 3
}

// dispatch builds one notification request per subscriber per channel
// and submits them as a single bulk call. Address lookup failures skip
// that subscriber/channel; a bulk submission failure is logged but the
// cooldown fire already recorded stands.
func (e *Engine) dispatch(ctx context.Context, eval *Evaluation, eventType string, now time.Time) {
	scheduledAt := now.Add(deliveryDelayFor(eval.Urgency))
	retryBudget := retryBudgetFor(eval.Urgency)
	channels := channelsFor(eval.Urgency)

	requests := make([]events.NotificationRequest, 0, len(eval.Subscribers)*len(channels))
	for _, subscriberID := range eval.Subscribers {
		for _, channel := range channels {
			address, err := e.resolver.Address(ctx, subscriberID, channel)
			if err != nil {
				slog.Warn("Recipient address lookup failed",
					"trigger_id", eval.Trigger.ID,
					"channel", channel,
					"error", err,
				)
				continue
			}
			if address == "" {
				continue
			}
			requests = append(requests, events.NotificationRequest{
				ID:               uuid.NewString(),
				Channel:          channel,
				Priority:         eval.Urgency,
				RecipientAddress: address,
				Content:          eval.Message,
				Metadata: events.Metadata{
					SubscriberID: subscriberID,
					TriggerID:    eval.Trigger.ID,
					EventType:    eventType,
					EntityIDs:    eval.Context.EntityIDs(),
				},
				RetryBudget:           retryBudget,
				ScheduledDeliveryTime: scheduledAt,
			})
		}
	}

	if len(requests) == 0 {
		slog.Warn("No dispatchable requests for evaluation",
			"trigger_id", eval.Trigger.ID,
			"event_type", eventType,
		)
		return
	}

	accepted, err := e.dispatcher.SubmitBulk(ctx, requests)
	if err != nil {
		e.collector.RecordSubmitError()
		slog.Error("Bulk notification submission failed",
			"trigger_id", eval.Trigger.ID,
			"event_type", eventType,
			"requests", len(requests),
			"error", err,
		)
		return
	}
	e.collector.RecordSubmitted(len(accepted))
	slog.Info("Submitted notification requests",
		"trigger_id", eval.Trigger.ID,
		"event_type", eventType,
		"urgency", eval.Urgency,
		"requests", len(requests),
		"accepted", len(accepted),
	)
}
