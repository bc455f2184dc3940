// Package dispatch provides the kafka-backed notification dispatcher.
// Accepted requests are published to the notifications topic; delivery
// workers downstream own the actual sending.
package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/pkg/retry"
)

// writeTimeout is the maximum time to wait for a kafka write.
const writeTimeout = 10 * time.Second

// messageWriter is the slice of kafka.Writer the dispatcher needs.
// Lets tests substitute a fake.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaDispatcher publishes notification requests to a kafka topic,
// one message per request, keyed by subscriber hash so one subscriber's
// notifications stay ordered on one partition.
type KafkaDispatcher struct {
	writer   messageWriter
	topic    string
	retryCfg retry.Config
}

// NewKafkaDispatcher creates a dispatcher writing to the given brokers
// and topic. Writes are synchronous for at-least-once submission.
func NewKafkaDispatcher(brokers, topic string) (*KafkaDispatcher, error) {
	if brokers == "" {
		return nil, fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	slog.Info("Kafka dispatcher configured",
		"brokers", brokerList,
		"topic", topic,
		"write_timeout", writeTimeout,
	)

	return &KafkaDispatcher{
		writer:   writer,
		topic:    topic,
		retryCfg: retry.DefaultConfig(),
	}, nil
}

// newWithWriter is the test constructor.
func newWithWriter(w messageWriter, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{
		writer:   w,
		topic:    topic,
		retryCfg: retry.Config{MaxRetries: 0},
	}
}

// SubmitBulk implements the dispatcher contract: encode every request,
// publish the batch, return the accepted ids. Transient write failures
// are retried with backoff before the submission is reported failed.
func (d *KafkaDispatcher) SubmitBulk(ctx context.Context, requests []events.NotificationRequest) ([]string, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	msgs := make([]kafka.Message, 0, len(requests))
	accepted := make([]string, 0, len(requests))
	for i := range requests {
		msg, err := buildMessage(&requests[i])
		if err != nil {
			slog.Error("Failed to encode notification request",
				"request_id", requests[i].ID,
				"trigger_id", requests[i].Metadata.TriggerID,
				"error", err,
			)
			continue
		}
		msgs = append(msgs, msg)
		accepted = append(accepted, requests[i].ID)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("no encodable requests in batch of %d", len(requests))
	}

	err := retry.WithRetry(ctx, d.retryCfg, "submit_notifications", func() error {
		return d.writer.WriteMessages(ctx, msgs...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish notification batch: %w", err)
	}
	return accepted, nil
}

// buildMessage encodes one request as JSON, keyed by a hash of the
// subscriber id for even partition distribution with per-subscriber
// ordering.
func buildMessage(req *events.NotificationRequest) (kafka.Message, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal request: %w", err)
	}
	key := sha256.Sum256([]byte(req.Metadata.SubscriberID))
	return kafka.Message{
		Key:   key[:],
		Value: payload,
		Time:  time.Now(),
	}, nil
}
