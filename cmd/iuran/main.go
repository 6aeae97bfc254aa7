package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"iuran/internal/amqp"
	"iuran/internal/auth"
	"iuran/internal/config"
	apphttp "iuran/internal/http"
	applog "iuran/internal/log"
	"iuran/internal/store"
	"iuran/internal/tabular"
	gtab "iuran/internal/tabular/google"
	mtab "iuran/internal/tabular/memory"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var backend tabular.Backend
	switch cfg.DataBackend {
	case "sheets":
		client, err := gtab.New(ctx, gtab.Config{
			SpreadsheetID:       cfg.GoogleSpreadsheetID,
			ServiceAccountEmail: cfg.GoogleServiceAccountEmail,
			PrivateKey:          cfg.GooglePrivateKey,
			CredentialsJSON:     cfg.GoogleCredentialsJSON,
			CredentialsFile:     cfg.GoogleCredentialsFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets backend", applog.FieldError, err)
			os.Exit(1)
		}
		backend = client
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		mem := mtab.New()
		// A real spreadsheet comes with header rows; give the in-process
		// sheets the same shape.
		mem.Seed(cfg.PaymentsSheet, [][]string{{"paymentKey", "memberId", "month"}})
		mem.Seed(cfg.TransactionsSheet, [][]string{{"id", "date", "description", "type", "amount"}})
		backend = mem
		logger.Info("Initialized memory backend")
	}

	ledger := store.New(backend, store.Config{
		MembersSheet:      cfg.MembersSheet,
		PaymentsSheet:     cfg.PaymentsSheet,
		TransactionsSheet: cfg.TransactionsSheet,
		AmountCell:        cfg.AmountCell,
		MonthlyAmount:     cfg.MonthlyAmount,
	})

	authenticator := auth.NewStatic(cfg.AdminUsername, cfg.AdminPasswordHash, 0)

	var publisher apphttp.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without audit events",
				applog.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Initialized AMQP audit publisher",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, authenticator, publisher)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting iuran server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
