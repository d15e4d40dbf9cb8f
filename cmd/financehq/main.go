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

	"financehq/internal/config"
	apphttp "financehq/internal/http"
	"financehq/internal/services"
	"financehq/internal/sheets"
	gsheet "financehq/internal/sheets/google"
	mem "financehq/internal/sheets/memory"
	"financehq/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	db, cleanup, err := openBackend(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}
	logger.Info("Initialized data backend", "backend", cfg.DataBackend)

	dash := services.NewDashboard(db, cfg.LoaderConfig(), cfg.ServiceConfig())
	srv := apphttp.NewServer(":"+cfg.Port, dash)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 15 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting financehq server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// openBackend picks the tabular store per configuration. The memory backend
// starts with an empty transactions sheet so the server is usable without
// any credentials.
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
		store := mem.New()
		sch := cfg.LoaderConfig().Transactions
		store.SetSheet("Transactions", [][]string{{
			sch.Date, sch.Amount, sch.Category, sch.Description, sch.PaymentMode,
		}})
		return store, nil, nil
	}
}
