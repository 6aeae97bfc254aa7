package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"iuran/internal/amqp"
	"iuran/internal/audit"
	"iuran/internal/config"
	applog "iuran/internal/log"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting audit-worker")

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	auditStore, err := audit.NewStore(cfg.AuditDBPath)
	if err != nil {
		logger.Error("Failed to initialize audit store", applog.FieldError, err, "path", cfg.AuditDBPath)
		os.Exit(1)
	}
	defer auditStore.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := func(ctx context.Context, event *amqp.LedgerEventMessage) error {
		return auditStore.Record(ctx, audit.Event{
			Action:     event.Action,
			Key:        event.Key,
			Detail:     event.Detail,
			OccurredAt: event.Timestamp,
		})
	}

	go func() {
		if err := amqpClient.ConsumeLedgerEvents(ctx, handle); err != nil {
			if err != context.Canceled {
				logger.Error("Event consumption failed", applog.FieldError, err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give the consumer a moment to ack in-flight deliveries.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
