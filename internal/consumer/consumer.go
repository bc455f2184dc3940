// Package consumer reads domain events from the events topic and routes
// them to the processor adapters.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rblake2320/New-election-countdown-sub005/internal/engine"
	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/processor"
)

const (
	readTimeout    = 10 * time.Second
	commitInterval = time.Second
)

// Envelope is the wire shape of one domain event. Family selects the
// adapter; the entity fields are only decoded for families that need
// them.
type Envelope struct {
	Family    string              `json:"family"` // election, candidate, breaking_news, system
	Election  *processor.Election `json:"election,omitempty"`
	Candidate *processor.Candidate `json:"candidate,omitempty"`
	Data      map[string]any      `json:"data"`
}

// Consumer wraps a kafka reader and feeds envelopes to the processor.
type Consumer struct {
	reader *kafka.Reader
	proc   *processor.Processor
	topic  string
}

// NewConsumer creates a consumer for the domain events topic with
// at-least-once semantics.
func NewConsumer(brokers []string, topic, groupID string, proc *processor.Processor) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("groupID cannot be empty")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		MaxWait:        readTimeout,
		CommitInterval: commitInterval,
		StartOffset:    kafka.FirstOffset,
	})

	slog.Info("Kafka event consumer configured",
		"brokers", brokers,
		"topic", topic,
		"group_id", groupID,
	)

	return &Consumer{reader: reader, proc: proc, topic: topic}, nil
}

// Run consumes events until the context is cancelled. Policy rejections
// (filtered, not critical enough) are logged and the loop moves on;
// nothing here is fatal to the process.
func (c *Consumer) Run(ctx context.Context) error {
	slog.Info("Starting domain event loop", "topic", c.topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Domain event loop stopped")
				return nil
			}
			slog.Error("Failed to read domain event", "error", err)
			continue
		}

		var env Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			slog.Error("Failed to decode domain event", "offset", msg.Offset, "error", err)
			continue
		}

		record, err := c.route(ctx, &env)
		switch {
		case err == nil:
			slog.Info("Processed domain event",
				"family", env.Family,
				"event_id", record.ID,
				"priority", record.Priority,
				"triggered", record.TriggeredCount,
			)
		case errors.Is(err, engine.ErrFiltered), errors.Is(err, processor.ErrNotCritical):
			slog.Info("Domain event rejected", "family", env.Family, "reason", err)
		default:
			slog.Error("Failed to process domain event", "family", env.Family, "error", err)
		}
	}
}

// route selects the adapter for the envelope's family.
func (c *Consumer) route(ctx context.Context, env *Envelope) (*events.EventRecord, error) {
	switch env.Family {
	case "election":
		if env.Election == nil {
			return nil, fmt.Errorf("election event missing election record")
		}
		return c.proc.ProcessElectionEvent(ctx, *env.Election, env.Data)
	case "candidate":
		if env.Candidate == nil || env.Election == nil {
			return nil, fmt.Errorf("candidate event missing candidate or election record")
		}
		return c.proc.ProcessCandidateEvent(ctx, *env.Candidate, *env.Election, env.Data)
	case "breaking_news":
		return c.proc.ProcessBreakingNewsEvent(ctx, env.Data)
	case "system":
		return c.proc.ProcessSystemEvent(ctx, env.Data)
	default:
		return nil, fmt.Errorf("unknown event family %q", env.Family)
	}
}

// Close gracefully closes the kafka reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		slog.Error("Error closing event consumer", "error", err)
		return err
	}
	return nil
}
