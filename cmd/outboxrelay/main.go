package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/config"
	"github.com/skyops/pss/internal/outbox"
	"github.com/skyops/pss/pkg/database"
	"github.com/skyops/pss/pkg/logger"
)

func main() {
	cfg := config.Load("outbox-relay")

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Msg("Starting outbox relay")

	// Connect to database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Connect to message broker
	publisher, err := events.NewBrokerPublisher(cfg.Broker, cfg.RabbitMQURI, cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("broker", cfg.Broker).Msg("Failed to connect to message broker")
	}
	defer publisher.Close()

	batchSize := getEnvInt("OUTBOX_BATCH_SIZE", 100)
	interval := time.Duration(getEnvInt("OUTBOX_POLL_INTERVAL_MS", 5000)) * time.Millisecond

	relay := outbox.NewRelay(db, publisher, batchSize, interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Logger.Info().
		Int("batch_size", batchSize).
		Dur("interval", interval).
		Str("broker", cfg.Broker).
		Msg("Outbox relay started")

	if err := relay.Run(ctx); err != nil && err != context.Canceled {
		logger.Logger.Fatal().Err(err).Msg("Outbox relay stopped")
	}

	logger.Logger.Info().Msg("Shutting down relay...")
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
