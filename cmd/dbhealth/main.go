package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/willowhq/invoice-vault/internal/common"
	repo "github.com/willowhq/invoice-vault/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Store.DSN,
		MaxConns:        cfg.Store.MaxConns,
		MinConns:        cfg.Store.MinConns,
		MaxConnLifetime: cfg.Store.MaxConnLifetime,
		MaxConnIdleTime: cfg.Store.MaxConnIdleTime,
		DialTimeout:     cfg.Store.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.HealthCheck(ctx, 1*time.Second); err != nil {
		logger.Error("store health: FAIL", "error", err)
		os.Exit(1)
	}
	logger.Info("store health: OK", "driver", string(db.Driver()))

	if err := db.Migrate(ctx); err != nil {
		logger.Error("migrating store", "error", err)
		os.Exit(1)
	}

	recs, err := repo.NewInvoiceRepository(db, logger).List(ctx)
	if err != nil {
		logger.Error("listing records", "error", err)
		os.Exit(1)
	}
	logger.Info("record count", "count", len(recs))
}
