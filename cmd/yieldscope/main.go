package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "yieldscope",
		Short:        "Concentrated-liquidity pool yield estimator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one refresh cycle and write yield records",
		RunE:  runOnce,
	}
	addPipelineFlags(runCmd)
	runCmd.Flags().String("at", "", "refresh instant (unix seconds or RFC3339), empty means now")
	root.AddCommand(runCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Refresh periodically and persist yield records",
		RunE:  runServe,
	}
	addPipelineFlags(serveCmd)
	serveCmd.Flags().String("pg-dsn", "", "Postgres DSN for the pool_yields table")
	serveCmd.Flags().Duration("interval", 10*time.Minute, "refresh interval")
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("pools-endpoint", "", "pools subgraph endpoint")
	cmd.Flags().String("positions-endpoint", "", "positions subgraph endpoint (defaults to pools endpoint)")
	cmd.Flags().String("blocks-endpoint", "", "blocks subgraph endpoint")
	cmd.Flags().String("reward-apr-url", "", "reward APR oracle URL (optional)")
	cmd.Flags().String("rpc", "", "chain RPC URL for the reserve cross-check (optional)")
	cmd.Flags().String("chain", "moonbeam", "chain tag for output records")
	cmd.Flags().String("project", "stellaswap-v3", "project tag for output records")
	cmd.Flags().String("pool-url-base", "https://app.stellaswap.com/pulsar/add", "base URL for pool links")
	cmd.Flags().String("out", "./data/yields.jsonl", "output JSONL path")
	cmd.Flags().String("state-file", "./data/refresh_state.json", "refresh state file path (empty disables)")
	cmd.Flags().Int("max-attempts", 3, "subgraph query attempts")
	cmd.Flags().Duration("retry-delay", time.Second, "base retry delay, grows linearly per attempt")
	cmd.Flags().Int("page-size", 1000, "positions page size")
	cmd.Flags().Duration("fee-window", 24*time.Hour, "fee accrual window")
	cmd.Flags().Duration("block-tolerance", time.Minute, "historical block timestamp tolerance")
	cmd.Flags().Uint64("fallback-block", 0, "fallback block when no checkpoint matches")
	cmd.Flags().Int("max-concurrent", 4, "concurrent pool pipelines")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
