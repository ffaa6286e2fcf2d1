package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yieldScope/internal/chain"
	"yieldScope/internal/config"
	"yieldScope/internal/graph"
	"yieldScope/internal/oracle"
	"yieldScope/internal/storage"
	"yieldScope/internal/yield"
)

func runOnce(cmd *cobra.Command, _ []string) error {
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

	atValue, _ := cmd.Flags().GetString("at")
	at, err := config.ParseTimestamp(atValue)
	if err != nil {
		return fmt.Errorf("parse at: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := engine.Compute(ctx, at)
	if err != nil {
		return err
	}

	sink := storage.NewJsonlStorage(cfg.Out)
	if err := sink.PutYieldBatch(records); err != nil {
		return err
	}

	logger.Info("run complete", zap.Int("records", len(records)), zap.String("out", cfg.Out))
	return nil
}

// buildEngine wires the remote sources into a yield engine. The returned
// cleanup closes the chain client when one was opened.
func buildEngine(ctx context.Context, cfg config.Config, logger *zap.Logger) (*yield.Engine, func(), error) {
	if cfg.PoolsEndpoint == "" {
		return nil, nil, fmt.Errorf("pools endpoint is required")
	}
	if cfg.BlocksEndpoint == "" {
		return nil, nil, fmt.Errorf("blocks endpoint is required")
	}
	if cfg.PositionsEndpoint == "" {
		cfg.PositionsEndpoint = cfg.PoolsEndpoint
	}

	client := graph.NewClient(graph.Config{
		MaxAttempts: uint(cfg.MaxAttempts),
		BaseDelay:   cfg.RetryDelay,
		PageSize:    cfg.PageSize,
	}, logger)
	source := graph.NewSource(client, graph.Endpoints{
		Pools:     cfg.PoolsEndpoint,
		Positions: cfg.PositionsEndpoint,
		Blocks:    cfg.BlocksEndpoint,
	})

	var rewards yield.RewardSource
	if cfg.RewardAPRURL != "" {
		rewards = oracle.NewClient(cfg.RewardAPRURL, 0)
	}

	cleanup := func() {}
	var balances yield.BalanceSource
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rpc: %w", err)
		}
		cleanup = chainClient.Close
		balances = chain.NewBalanceReader(chainClient, cfg.MaxConcurrent)
	}

	engine := yield.NewEngine(yield.Config{
		Chain:          cfg.Chain,
		Project:        cfg.Project,
		PoolURLBase:    cfg.PoolURLBase,
		FeeWindow:      cfg.FeeWindow,
		BlockTolerance: cfg.BlockTolerance,
		FallbackBlock:  cfg.FallbackBlock,
		MaxConcurrent:  cfg.MaxConcurrent,
	}, source, source, rewards, balances, logger)

	return engine, cleanup, nil
}
