package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yieldScope/internal/config"
	"yieldScope/internal/storage"
	"yieldScope/internal/storage/postgres"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	sink := storage.NewJsonlStorage(cfg.Out)
	state := storage.NewStateStore(cfg.StateFile)

	logger.Info("serve start",
		zap.Duration("interval", cfg.Interval),
		zap.String("chain", cfg.Chain),
		zap.String("project", cfg.Project),
		zap.Bool("postgres", store != nil),
	)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		refreshedAt := time.Now().UTC()
		records, err := engine.Compute(ctx, refreshedAt)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// A failed cycle emits nothing; the next tick retries from scratch.
			logger.Error("refresh failed", zap.Error(err))
		} else {
			if store != nil {
				if err := store.UpsertYields(ctx, records); err != nil {
					logger.Error("persist records", zap.Error(err))
				}
			}
			if err := sink.PutYieldBatch(records); err != nil {
				logger.Error("write records", zap.Error(err))
			}
			if err := state.Save(refreshedAt, len(records)); err != nil {
				logger.Warn("save refresh state", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
