// Package metrics collects alerting counters and reports them to redis
// on a fixed interval. Counters are volumes only; no subscriber data is
// ever recorded.
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKey is where the core publishes its counter snapshot.
	redisKey = "metrics:alerting-core"
	// snapshotTTL is how long a snapshot stays in redis if not refreshed.
	snapshotTTL = 2 * time.Minute
	// DefaultReportInterval is the default reporting cadence.
	DefaultReportInterval = 30 * time.Second
)

// Snapshot is the JSON shape written to redis and exposed over the
// read-only admin surface.
type Snapshot struct {
	StartedAt   time.Time `json:"started_at"`
	LastUpdated time.Time `json:"last_updated"`

	EventsReceived     uint64 `json:"events_received"`
	EventsFiltered     uint64 `json:"events_filtered"`
	TriggersFired      uint64 `json:"triggers_fired"`
	CooldownSuppressed uint64 `json:"cooldown_suppressed"`
	ResolutionErrors   uint64 `json:"resolution_errors"`
	RequestsSubmitted  uint64 `json:"requests_submitted"`
	SubmitErrors       uint64 `json:"submit_errors"`
}

// Collector accumulates counters and periodically writes a snapshot.
// A nil redis client disables reporting but keeps counters available.
type Collector struct {
	redis          *redis.Client
	startedAt      time.Time
	reportInterval time.Duration

	eventsReceived     atomic.Uint64
	eventsFiltered     atomic.Uint64
	triggersFired      atomic.Uint64
	cooldownSuppressed atomic.Uint64
	resolutionErrors   atomic.Uint64
	requestsSubmitted  atomic.Uint64
	submitErrors       atomic.Uint64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewCollector creates a collector reporting to the given redis client.
func NewCollector(redisClient *redis.Client) *Collector {
	return &Collector{
		redis:          redisClient,
		startedAt:      time.Now().UTC(),
		reportInterval: DefaultReportInterval,
		stopCh:         make(chan struct{}),
	}
}

// SetReportInterval overrides the reporting cadence.
func (c *Collector) SetReportInterval(interval time.Duration) {
	c.reportInterval = interval
}

// Start begins periodic snapshot writes until the context is cancelled
// or Stop is called.
func (c *Collector) Start(ctx context.Context) {
	if c.redis == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.reportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				c.write(context.Background())
				return
			case <-c.stopCh:
				c.write(context.Background())
				return
			case <-ticker.C:
				c.write(ctx)
			}
		}
	}()
}

// Stop halts reporting after a final write.
func (c *Collector) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

// RecordReceived counts an incoming event.
func (c *Collector) RecordReceived() { c.eventsReceived.Add(1) }

// RecordFiltered counts a filter-chain veto.
func (c *Collector) RecordFiltered() { c.eventsFiltered.Add(1) }

// RecordFired counts a trigger fire.
func (c *Collector) RecordFired() { c.triggersFired.Add(1) }

// RecordCooldownSuppressed counts a cooldown skip.
func (c *Collector) RecordCooldownSuppressed() { c.cooldownSuppressed.Add(1) }

// RecordResolutionError counts a failed subscriber resolution.
func (c *Collector) RecordResolutionError() { c.resolutionErrors.Add(1) }

// RecordSubmitted counts notification requests handed to the dispatcher.
func (c *Collector) RecordSubmitted(n int) { c.requestsSubmitted.Add(uint64(n)) }

// RecordSubmitError counts a failed bulk submission.
func (c *Collector) RecordSubmitError() { c.submitErrors.Add(1) }

// Current returns the counter snapshot.
func (c *Collector) Current() Snapshot {
	return Snapshot{
		StartedAt:          c.startedAt,
		LastUpdated:        time.Now().UTC(),
		EventsReceived:     c.eventsReceived.Load(),
		EventsFiltered:     c.eventsFiltered.Load(),
		TriggersFired:      c.triggersFired.Load(),
		CooldownSuppressed: c.cooldownSuppressed.Load(),
		ResolutionErrors:   c.resolutionErrors.Load(),
		RequestsSubmitted:  c.requestsSubmitted.Load(),
		SubmitErrors:       c.submitErrors.Load(),
	}
}

func (c *Collector) write(ctx context.Context) {
	snap := c.Current()
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("Failed to marshal metrics snapshot", "error", err)
		return
	}
	if err := c.redis.Set(ctx, redisKey, payload, snapshotTTL).Err(); err != nil {
		slog.Warn("Failed to write metrics snapshot", "error", err)
	}
}

// Read fetches the latest snapshot from redis.
func Read(ctx context.Context, client *redis.Client) (*Snapshot, error) {
	payload, err := client.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode metrics snapshot: %w", err)
	}
	return &snap, nil
}
