package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/api"
	"github.com/bobby-s-dev/airport-delays/internal/config"
	"github.com/bobby-s-dev/airport-delays/internal/publish"
	"github.com/bobby-s-dev/airport-delays/internal/refdata"
	"github.com/bobby-s-dev/airport-delays/internal/render"
	"github.com/bobby-s-dev/airport-delays/internal/scheduler"
	"github.com/bobby-s-dev/airport-delays/internal/services"
	"github.com/bobby-s-dev/airport-delays/pkg/client"
)

func main() {
	// Initialize logger
	logger := newLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Airport Delay Dashboard Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Failed to load display time zone", zap.Error(err))
	}

	// Reference data
	airports := refdata.Airports()
	snapshot := services.Snapshot(refdata.Snapshot())
	tracked := airports.Tracked()
	logger.Info("Reference data loaded",
		zap.Int("airports", airports.Len()),
		zap.Int("tracked", len(tracked)),
		zap.Int("snapshot", len(snapshot)))

	// Feed clients, tried in configured order
	clientCfg := client.ClientConfig{
		Timeout:        cfg.Feed.RequestTimeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}
	var resolvers []services.Resolver
	for _, c := range client.NewFAAStatusClients(cfg.Feed.Endpoints, clientCfg, logger) {
		resolvers = append(resolvers, c)
	}

	fetcher := services.NewFetcher(resolvers, cfg.Feed.RequestTimeout, logger)
	logger.Info("Status endpoints configured", zap.Strings("endpoints", fetcher.Endpoints()))
	aggregator := services.NewAggregator(fetcher, snapshot, services.NewStatusCache(logger), logger)

	// Render surface and selection controller
	scene := render.NewScene()
	controller := render.NewController(airports, aggregator.FallbackStatus, scene, scene, logger,
		render.WithArcSteps(cfg.Render.ArcSteps),
		render.WithLocation(loc))

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	refreshScheduler := scheduler.NewScheduler(
		aggregator,
		controller,
		scene,
		publisher,
		tracked,
		cfg.Scheduler.RefreshInterval,
		cfg.Scheduler.CycleTimeout,
		logger,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		JSONEncoder:  fiber.DefaultJSONEncoder,
		ErrorHandler: api.ErrorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(airports, aggregator, controller, scene, refreshScheduler, logger)
	api.SetupRoutes(app, handler, logger)

	// Start scheduler
	if err := refreshScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler
	refreshScheduler.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(level string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newPublisher connects the optional board sinks. A sink that cannot
// connect is logged and skipped.
func newPublisher(cfg *config.Config, logger *zap.Logger) *publish.Multi {
	var sinks []publish.Sink

	if cfg.NATS.URL != "" {
		sink, err := publish.NewNATSSink(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			logger.Warn("NATS publishing disabled", zap.String("url", cfg.NATS.URL), zap.Error(err))
		} else {
			sinks = append(sinks, sink)
		}
	}

	if cfg.Redis.Addr != "" {
		sink, err := publish.NewRedisSink(cfg.Redis.Addr, cfg.Redis.Key, 2*cfg.Scheduler.RefreshInterval)
		if err != nil {
			logger.Warn("Redis publishing disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			logPreviousBoard(sink, logger)
			sinks = append(sinks, sink)
		}
	}

	multi := publish.NewMulti(logger, sinks...)
	logger.Info("Board publishers configured", zap.Int("sinks", multi.Len()))
	return multi
}

// logPreviousBoard reports the board a previous run left in Redis.
func logPreviousBoard(sink *publish.RedisSink, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	board, ok, err := sink.Latest(ctx)
	switch {
	case err != nil:
		logger.Warn("Could not read previous board", zap.String("sink", sink.Name()), zap.Error(err))
	case ok:
		logger.Info("Previous board found",
			zap.String("sink", sink.Name()),
			zap.Uint64("cycle", board.CycleID),
			zap.Time("published_at", board.PublishedAt),
			zap.String("health", string(board.Health.State)))
	}
}
