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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/skyops/pss/docs"
	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/config"
	"github.com/skyops/pss/internal/flight"
	"github.com/skyops/pss/internal/flight/cache"
	httpDelivery "github.com/skyops/pss/internal/flight/delivery/http"
	"github.com/skyops/pss/internal/flight/domain"
	"github.com/skyops/pss/pkg/auth"
	"github.com/skyops/pss/pkg/database"
	"github.com/skyops/pss/pkg/logger"
	"github.com/skyops/pss/pkg/middleware"
	"github.com/skyops/pss/pkg/tracing"
)

// @title Flight Inventory Service API
// @version 1.0
// @description Flight schedule and seat inventory management with event publication
// @host localhost:8000
// @BasePath /
func main() {
	cfg := config.Load("flight-inventory-service")

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting flight inventory service")

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
	if err := db.AutoMigrate(&domain.FlightSchedule{}, &domain.Inventory{}, &events.OutboxRecord{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Event publisher: inline broker delivery or durable outbox
	var publisher events.Publisher
	switch cfg.EventSink {
	case config.SinkOutbox:
		publisher = events.NewOutboxSink(db)
		logger.Logger.Info().Msg("Events routed through the outbox table")
	default:
		publisher, err = events.NewBrokerPublisher(cfg.Broker, cfg.RabbitMQURI, cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("broker", cfg.Broker).Msg("Failed to connect to message broker")
		}
		logger.Logger.Info().Str("broker", cfg.Broker).Msg("Connected to message broker")
	}
	defer publisher.Close()

	// Optional read-through cache for schedule listings
	scheduleCache := newScheduleCache(cfg)

	// Initialize handler with Wire DI
	handler, err := flight.InitializeHTTPHandler(db, publisher, scheduleCache)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Start HTTP server
	startHTTPServer(cfg, handler, sqlDB)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// newScheduleCache connects to Redis if it is reachable. The service stays
// up without the cache; listings just hit the database every time.
func newScheduleCache(cfg config.Config) *cache.ScheduleCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, schedule cache disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return cache.NewScheduleCache(client, 5*time.Minute)
}

func startHTTPServer(cfg config.Config, handler *httpDelivery.FlightHandler, db *sql.DB) {
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

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", cfg.HTTPPort).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+cfg.HTTPPort, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}
