// Command sheets-init provisions the optional Budgets and TimeLogs sheets in
// the configured backend, writing their header rows. Safe to run repeatedly.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"financehq/internal/config"
	"financehq/internal/services"
	"financehq/internal/sheets"
	gsheet "financehq/internal/sheets/google"
	mem "financehq/internal/sheets/memory"
	"financehq/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	dash := services.NewDashboard(db, cfg.LoaderConfig(), cfg.ServiceConfig())
	if err := dash.EnsureSheets(ctx); err != nil {
		logger.Error("Failed to provision sheets", "error", err)
		os.Exit(1)
	}

	logger.Info("Sheets provisioned",
		"backend", cfg.DataBackend,
		"budgets", cfg.BudgetsSheet,
		"time_logs", cfg.TimeLogsSheet)
}

func openBackend(ctx context.Context, cfg *config.Config) (sheets.Database, func() error, error) {
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return cli, nil, nil
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return mem.New(), nil, nil
	}
}
