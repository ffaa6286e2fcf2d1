package yield

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"yieldScope/internal/chain"
	"yieldScope/internal/model"
)

// PoolSource provides pool and position snapshots from the remote query
// service.
type PoolSource interface {
	CurrentPools(ctx context.Context) ([]model.Pool, error)
	PoolsAtBlock(ctx context.Context, block uint64) ([]model.Pool, error)
	PoolPositions(ctx context.Context, poolID string) ([]model.Position, error)
}

// CheckpointSource resolves a historical block for snapshot queries.
type CheckpointSource interface {
	BlockBefore(ctx context.Context, at time.Time, age, tolerance time.Duration, fallback uint64) (uint64, error)
}

// RewardSource reports externally computed reward APRs by pool id.
type RewardSource interface {
	RewardAPRs(ctx context.Context) (map[string]float64, error)
}

// BalanceSource reads raw ERC20 balances for (token, owner) pairs.
type BalanceSource interface {
	Balances(ctx context.Context, calls []chain.BalanceCall) []chain.BalanceResult
}

// Config holds runtime settings for one refresh pipeline.
type Config struct {
	Chain          string
	Project        string
	PoolURLBase    string
	FeeWindow      time.Duration
	BlockTolerance time.Duration
	FallbackBlock  uint64
	MaxConcurrent  int
}

// Engine runs refresh cycles: it reads current and historical pool sets,
// walks every pool's open positions, and projects fee accrual into yield
// records. A cycle either fully succeeds or fails; no partial output.
type Engine struct {
	cfg      Config
	pools    PoolSource
	blocks   CheckpointSource
	rewards  RewardSource
	balances BalanceSource
	logger   *zap.Logger
}

// NewEngine builds an Engine. rewards and balances are optional; nil disables
// the reward oracle and the reserve cross-check respectively.
func NewEngine(cfg Config, pools PoolSource, blocks CheckpointSource, rewards RewardSource, balances BalanceSource, logger *zap.Logger) *Engine {
	if cfg.FeeWindow <= 0 {
		cfg.FeeWindow = 24 * time.Hour
	}
	if cfg.BlockTolerance <= 0 {
		cfg.BlockTolerance = time.Minute
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:      cfg,
		pools:    pools,
		blocks:   blocks,
		rewards:  rewards,
		balances: balances,
		logger:   logger,
	}
}

// Compute runs one refresh cycle at the given instant and returns the
// accepted yield records. A zero time means "now".
func (e *Engine) Compute(ctx context.Context, at time.Time) ([]model.YieldRecord, error) {
	if e.pools == nil {
		return nil, fmt.Errorf("pool source is nil")
	}
	if e.blocks == nil {
		return nil, fmt.Errorf("checkpoint source is nil")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	rewards := e.fetchRewards(ctx)

	priorBlock, err := e.blocks.BlockBefore(ctx, at, e.cfg.FeeWindow, e.cfg.BlockTolerance, e.cfg.FallbackBlock)
	if err != nil {
		return nil, fmt.Errorf("resolve checkpoint: %w", err)
	}

	priorPools, err := e.pools.PoolsAtBlock(ctx, priorBlock)
	if err != nil {
		return nil, fmt.Errorf("prior pools at block %d: %w", priorBlock, err)
	}
	priorByID := make(map[string]model.Pool, len(priorPools))
	for _, pool := range priorPools {
		priorByID[pool.ID] = pool
	}

	pools, err := e.pools.CurrentPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("current pools: %w", err)
	}

	reserves := e.fetchReserves(ctx, pools)

	e.logger.Info("refresh cycle",
		zap.Time("at", at),
		zap.Uint64("prior_block", priorBlock),
		zap.Int("pools", len(pools)),
		zap.Int("reward_pools", len(rewards)),
	)

	records := make([]model.YieldRecord, len(pools))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.cfg.MaxConcurrent)
	for i, pool := range pools {
		i, pool := i, pool
		group.Go(func() error {
			record, err := e.poolRecord(groupCtx, pool, priorByID, rewards, reserves)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	accepted := make([]model.YieldRecord, 0, len(records))
	for _, record := range records {
		if record.Valid() && record.KeepFinite() {
			accepted = append(accepted, record)
		}
	}
	e.logger.Info("refresh complete",
		zap.Int("accepted", len(accepted)),
		zap.Int("dropped", len(records)-len(accepted)),
	)
	return accepted, nil
}

func (e *Engine) poolRecord(ctx context.Context, pool model.Pool, priorByID map[string]model.Pool, rewards map[string]float64, reserves map[string]model.Reserves) (model.YieldRecord, error) {
	var prior *model.Pool
	if p, ok := priorByID[pool.ID]; ok {
		prior = &p
	}
	feeDelta, err := FeeDeltaToken0(pool, prior)
	if err != nil {
		return model.YieldRecord{}, fmt.Errorf("pool %s fees: %w", pool.ID, err)
	}

	positions, err := e.pools.PoolPositions(ctx, pool.ID)
	if err != nil {
		return model.YieldRecord{}, fmt.Errorf("pool %s positions: %w", pool.ID, err)
	}

	tvl, err := PoolTVLToken0(pool, positions)
	if err != nil {
		return model.YieldRecord{}, err
	}

	aprBase, apyBase := Project(feeDelta, tvl)

	record := model.YieldRecord{
		Pool:             pool.ID,
		Chain:            e.cfg.Chain,
		Project:          e.cfg.Project,
		Symbol:           pool.Token0.Symbol + "-" + pool.Token1.Symbol,
		TvlUsd:           parseFloat(pool.TotalValueLockedUSD),
		AprBase:          aprBase,
		ApyBase:          apyBase,
		AprSource:        model.APRSourceFees,
		UnderlyingTokens: []string{pool.Token0.ID, pool.Token1.ID},
		URL:              e.cfg.PoolURLBase + "/" + pool.Token0.ID + "/" + pool.Token1.ID,
	}
	if apr, ok := rewards[pool.ID]; ok {
		apy := CompoundAPR(apr)
		record.AprReward = &apr
		record.ApyReward = &apy
		record.AprSource = model.APRSourceOracle
	}
	if res, ok := reserves[pool.ID]; ok {
		res := res
		record.Reserves = &res
	}
	return record, nil
}

func (e *Engine) fetchRewards(ctx context.Context) map[string]float64 {
	if e.rewards == nil {
		return nil
	}
	rewards, err := e.rewards.RewardAPRs(ctx)
	if err != nil {
		// A missing oracle is a defined default, not a cycle failure.
		e.logger.Warn("reward aprs unavailable", zap.Error(err))
		return nil
	}
	return rewards
}

// fetchReserves cross-checks subgraph reserves against on-chain balances.
// Partial failures are tolerated; pools with any failed call are left out.
func (e *Engine) fetchReserves(ctx context.Context, pools []model.Pool) map[string]model.Reserves {
	if e.balances == nil {
		return nil
	}

	calls := make([]chain.BalanceCall, 0, len(pools)*2)
	for _, pool := range pools {
		calls = append(calls,
			chain.BalanceCall{Token: pool.Token0.ID, Owner: pool.ID},
			chain.BalanceCall{Token: pool.Token1.ID, Owner: pool.ID},
		)
	}
	results := e.balances.Balances(ctx, calls)

	out := make(map[string]model.Reserves, len(pools))
	for i, pool := range pools {
		res0, res1 := results[2*i], results[2*i+1]
		if res0.Err != nil || res1.Err != nil {
			e.logger.Debug("reserve check skipped",
				zap.String("pool", pool.ID),
				zap.Errors("errors", []error{res0.Err, res1.Err}),
			)
			continue
		}
		decimals0, err0 := model.ParseInt32(pool.Token0.Decimals)
		decimals1, err1 := model.ParseInt32(pool.Token1.Decimals)
		if err0 != nil || err1 != nil {
			continue
		}
		out[pool.ID] = model.Reserves{
			Reserve0: decimal.NewFromBigInt(res0.Balance, -decimals0).String(),
			Reserve1: decimal.NewFromBigInt(res1.Balance, -decimals1).String(),
		}
	}
	return out
}

func parseFloat(input string) float64 {
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		// Non-parseable TVL fails the finite filter downstream.
		return math.NaN()
	}
	return value
}
