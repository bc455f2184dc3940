// Package config provides configuration parsing and validation for the
// alerting core.
package config

import (
	"fmt"
	"time"
)

// Config holds all configuration parameters for the alerting core.
type Config struct {
	KafkaBrokers       string
	EventsTopic        string
	ConsumerGroupID    string
	NotificationsTopic string
	ResolverBaseURL    string
	RedisAddr          string
	PostgresDSN        string // empty disables the trigger store
	SweepInterval      time.Duration
	UseRedisCooldowns  bool
	LogLevel           string
}

// Validate checks that all required configuration fields are set and
// have valid values.
func (c *Config) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.EventsTopic == "" {
		return fmt.Errorf("events-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.NotificationsTopic == "" {
		return fmt.Errorf("notifications-topic cannot be empty")
	}
	if c.ResolverBaseURL == "" {
		return fmt.Errorf("resolver-url cannot be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("redis-addr cannot be empty")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep-interval must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.LogLevel)
	}
	return nil
}
