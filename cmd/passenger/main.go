package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/config"
	httpDelivery "github.com/skyops/pss/internal/passenger/delivery/http"
	"github.com/skyops/pss/internal/passenger/repository"
	"github.com/skyops/pss/pkg/auth"
	"github.com/skyops/pss/pkg/database"
	"github.com/skyops/pss/pkg/logger"
	"github.com/skyops/pss/pkg/middleware"
	"github.com/skyops/pss/pkg/tracing"
)

func main() {
	cfg := config.Load("passenger-service")

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Msg("Starting passenger service")

	// Initialize tracing
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	repo := repository.NewGormPassengerRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to message broker
	publisher, err := events.NewBrokerPublisher(cfg.Broker, cfg.RabbitMQURI, cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("broker", cfg.Broker).Msg("Failed to connect to message broker")
	}
	defer publisher.Close()

	handler := httpDelivery.NewPassengerHandler(repo, publisher)

	// Start HTTP server
	startHTTPServer(cfg, handler, sqlDB)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(cfg config.Config, handler *httpDelivery.PassengerHandler, db *sql.DB) {
	// Setup router
	router := mux.NewRouter()

	// Cross-cutting middleware (recovery, timeout, request ID, logging, tracing)
	middleware.Register(router, middleware.DefaultConfig(cfg.ServiceName))

	// Mutating routes require a bearer token when JWT_SECRET is configured
	var guard httpDelivery.Guard
	if cfg.JWTSecret != "" {
		guard = middleware.BearerAuth(auth.NewValidator(cfg.JWTSecret))
		logger.Logger.Info().Msg("JWT authentication enabled for mutating endpoints")
	}

	// Register routes
	handler.RegisterRoutes(router, guard)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", cfg.HTTPPort).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+cfg.HTTPPort, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}
