package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/config"
	"github.com/rblake2320/New-election-countdown-sub005/internal/consumer"
	"github.com/rblake2320/New-election-countdown-sub005/internal/cooldown"
	"github.com/rblake2320/New-election-countdown-sub005/internal/dispatch"
	"github.com/rblake2320/New-election-countdown-sub005/internal/engine"
	"github.com/rblake2320/New-election-countdown-sub005/internal/filter"
	"github.com/rblake2320/New-election-countdown-sub005/internal/metrics"
	"github.com/rblake2320/New-election-countdown-sub005/internal/processor"
	"github.com/rblake2320/New-election-countdown-sub005/internal/store"
	"github.com/rblake2320/New-election-countdown-sub005/internal/subscriber"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
	"github.com/rblake2320/New-election-countdown-sub005/pkg/shared"
)

func main() {
	cfg := &config.Config{}
	flag.StringVar(&cfg.KafkaBrokers, "kafka-brokers", shared.GetEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), "Kafka broker addresses (comma-separated)")
	flag.StringVar(&cfg.EventsTopic, "events-topic", "events.domain", "Kafka topic for inbound domain events")
	flag.StringVar(&cfg.ConsumerGroupID, "consumer-group-id", "alerting-core-group", "Kafka consumer group ID for domain events")
	flag.StringVar(&cfg.NotificationsTopic, "notifications-topic", "notifications.requests", "Kafka topic for notification requests")
	flag.StringVar(&cfg.ResolverBaseURL, "resolver-url", shared.GetEnvOrDefault("RESOLVER_URL", "http://localhost:8081"), "Base URL of the subscription service")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", shared.GetEnvOrDefault("REDIS_ADDR", "localhost:6379"), "Redis server address")
	flag.StringVar(&cfg.PostgresDSN, "postgres-dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN for persisted triggers (empty = defaults only)")
	flag.DurationVar(&cfg.SweepInterval, "sweep-interval", 10*time.Minute, "Interval between background state sweeps")
	flag.BoolVar(&cfg.UseRedisCooldowns, "redis-cooldowns", false, "Use the shared redis cooldown store instead of in-memory")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting alerting core",
		"kafka_brokers", cfg.KafkaBrokers,
		"notifications_topic", cfg.NotificationsTopic,
		"resolver_url", cfg.ResolverBaseURL,
		"redis_addr", cfg.RedisAddr,
		"postgres_dsn", shared.MaskDSN(cfg.PostgresDSN),
		"sweep_interval", cfg.SweepInterval,
		"redis_cooldowns", cfg.UseRedisCooldowns,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	redisClient, err := shared.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Trigger registry: compiled-in defaults, persisted definitions on top.
	registry := trigger.NewRegistry()
	for _, t := range trigger.Defaults() {
		if err := registry.Add(t); err != nil {
			slog.Error("Invalid default trigger", "trigger_id", t.ID, "error", err)
			os.Exit(1)
		}
	}
	if cfg.PostgresDSN != "" {
		db, err := store.NewDB(cfg.PostgresDSN)
		if err != nil {
			slog.Error("Failed to connect to trigger store", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		persisted, err := db.LoadTriggers(ctx)
		if err != nil {
			slog.Error("Failed to load persisted triggers", "error", err)
			os.Exit(1)
		}
		for _, t := range persisted {
			if err := registry.Add(t); err != nil {
				slog.Warn("Skipping invalid persisted trigger", "trigger_id", t.ID, "error", err)
			}
		}
		slog.Info("Loaded persisted triggers", "count", len(persisted))
	}
	slog.Info("Trigger registry ready", "triggers", registry.Count())

	filters := filter.DefaultChain()

	memoryCooldowns := cooldown.NewMemoryStore()
	var cooldowns cooldown.Store = memoryCooldowns
	if cfg.UseRedisCooldowns {
		cooldowns = cooldown.NewRedisStore(redisClient)
	}

	resolver, err := subscriber.NewHTTPResolver(cfg.ResolverBaseURL)
	if err != nil {
		slog.Error("Failed to create subscriber resolver", "error", err)
		os.Exit(1)
	}

	dispatcher, err := dispatch.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.NotificationsTopic)
	if err != nil {
		slog.Error("Failed to create notification dispatcher", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector(redisClient)
	collector.Start(ctx)
	defer collector.Stop()

	eng := engine.New(registry, filters, cooldowns, resolver, dispatcher, collector)
	proc := processor.New(eng)

	brokerList := strings.Split(cfg.KafkaBrokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	eventLoop, err := consumer.NewConsumer(brokerList, cfg.EventsTopic, cfg.ConsumerGroupID, proc)
	if err != nil {
		slog.Error("Failed to create event consumer", "error", err)
		os.Exit(1)
	}
	defer eventLoop.Close()

	// Background sweep: bounds filter state always, cooldown state only
	// for the in-memory store (redis entries expire via TTL).
	pruners := []engine.Pruner{filters}
	if !cfg.UseRedisCooldowns {
		pruners = append(pruners, memoryCooldowns)
	}
	sweeper := engine.NewSweeper(cfg.SweepInterval, pruners...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	if err := eventLoop.Run(ctx); err != nil {
		slog.Error("Event loop failed", "error", err)
	}
	wg.Wait()
	slog.Info("Alerting core stopped")
}
