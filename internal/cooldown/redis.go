package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cooldownKeyPrefix namespaces cooldown entries in redis.
const cooldownKeyPrefix = "cooldown:"

// RedisStore is a shared cooldown store for multi-instance deployments.
// Entries expire server-side via TTL, so no sweeper is needed for it.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed cooldown store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// InCooldown implements Store. The entry's TTL equals the window, so
// existence alone answers the check.
func (s *RedisStore) InCooldown(ctx context.Context, triggerID, entityKey string, window time.Duration, _ time.Time) (bool, error) {
	if window <= 0 {
		return false, nil
	}
	n, err := s.client.Exists(ctx, cooldownKeyPrefix+key(triggerID, entityKey)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	return n > 0, nil
}

// MarkFired implements Store. A zero window writes nothing: the trigger
// is always eligible and the entry would never be read.
func (s *RedisStore) MarkFired(ctx context.Context, triggerID, entityKey string, window time.Duration, now time.Time) error {
	if window <= 0 {
		return nil
	}
	err := s.client.Set(ctx, cooldownKeyPrefix+key(triggerID, entityKey), now.Unix(), window).Err()
	if err != nil {
		return fmt.Errorf("failed to record cooldown fire: %w", err)
	}
	return nil
}
