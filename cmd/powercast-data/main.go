package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/powercast-data/internal/api/http"
	"github.com/i474232898/powercast-data/internal/config"
	"github.com/i474232898/powercast-data/internal/grid"
	"github.com/i474232898/powercast-data/internal/grid/remote"
	"github.com/i474232898/powercast-data/internal/grid/synthetic"
	"github.com/i474232898/powercast-data/internal/logger"
	"github.com/i474232898/powercast-data/internal/scheduler"
	"github.com/i474232898/powercast-data/internal/store"
)

func main() {
	envErr := config.LoadEnvFile()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if envErr != nil {
		zapLog.Info("no .env file loaded", zap.Error(envErr))
	}

	// Single-attempt client for the forecasting backend, behind a circuit breaker.
	client := remote.NewClient(remote.Config{
		BaseURL:          cfg.APIBaseURL,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	}, zapLog.Named("remote"))

	// Synthetic generators double as fallbacks and as the source of illustrative widgets.
	generator := synthetic.NewDefault()

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Facade: remote first, synthetic on any failure.
	service := grid.NewService(client, synthetic.Fallbacks(generator), memStore, zapLog.Named("grid"))

	// Scheduler that keeps the live grid header fresh.
	sched := scheduler.New(cfg.LiveInterval, service, zapLog.Named("scheduler"))
	if err := sched.Start(); err != nil {
		zapLog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "powercast-data",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "powercast-data",
			"backend": client.BaseURL(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, generator)

	go func() {
		zapLog.Info("listening", zap.String("port", cfg.Port), zap.String("backend", cfg.APIBaseURL))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLog.Warn("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zapLog.Error("error during shutdown", zap.Error(err))
	}
}
