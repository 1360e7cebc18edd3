// Command daylight runs the recurring task engine as a long-lived daemon:
// it loads the vault, materializes recurrence instances for the current
// window and keeps the ledger current across midnight boundaries until
// interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daylight/internal/config"
	"daylight/internal/domain"
	"daylight/internal/infrastructure/observability"
	"daylight/internal/recurring"
	"daylight/internal/schedule"
	"daylight/internal/storage"
	fsstorage "daylight/internal/storage/fs"
	gcsstorage "daylight/internal/storage/gcs"
	sqlstorage "daylight/internal/storage/sql"
)

const shutdownTimeoutSeconds = 10

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daylight: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	otelCfg := observability.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: observability.DefaultServiceName,
	}

	lp, logger, err := observability.InitLogger(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	slog.SetDefault(logger)
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "daylight: logger shutdown: %v\n", err)
		}
	}()

	tp, err := observability.InitTracerProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("tracer provider shutdown", "error", err)
		}
	}()

	mp, err := observability.InitMeterProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.Error("meter provider shutdown", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.InfoContext(ctx, "daylight starting",
		"storage", cfg.Storage,
		"look_behind_days", cfg.LookBehindDays,
		"look_ahead_days", cfg.LookAheadDays)

	scheduler := schedule.New(
		func() map[string]*domain.TaskRecord {
			tasks, err := store.LoadAll(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "failed to load tasks", "error", err)
				return nil
			}
			return tasks
		},
		func(tasks map[string]*domain.TaskRecord, result recurring.Result) {
			for _, key := range result.UpdatedKeys {
				if err := store.Save(ctx, tasks[key]); err != nil {
					slog.ErrorContext(ctx, "failed to persist task",
						"key", key, "error", err)
				}
			}
		},
		schedule.WithWindow(cfg.LookBehindDays, cfg.LookAheadDays),
	)

	scheduler.Start()
	defer scheduler.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.InfoContext(ctx, "shutdown signal received, stopping")
	return nil
}

// openStore builds the configured storage backend. The returned close
// function is safe to call once.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageFS:
		store, err := fsstorage.NewStore(cfg.VaultDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open vault: %w", err)
		}
		return store, func() {}, nil

	case config.StorageSQLite:
		store, err := sqlstorage.Open(ctx, sqlstorage.Config{
			Driver: sqlstorage.DriverSQLite,
			DSN:    cfg.SQLitePath,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.StoragePostgres:
		store, err := sqlstorage.Open(ctx, sqlstorage.Config{
			Driver: sqlstorage.DriverPostgres,
			DSN:    cfg.PostgresURL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.StorageGCS:
		store, err := gcsstorage.NewStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gcs store: %w", err)
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage)
	}
}

func newShutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
}
