package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yieldScope/internal/model"
)

// Store provides Postgres persistence for yield records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertYields inserts or updates the latest yield record per pool.
func (s *Store) UpsertYields(ctx context.Context, records []model.YieldRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO pool_yields (
				chain, pool, project, symbol, tvl_usd, apr_base, apy_base,
				apr_reward, apy_reward, apr_source, underlying_tokens, url,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
			ON CONFLICT (chain, pool)
			DO UPDATE SET
				project = EXCLUDED.project,
				symbol = EXCLUDED.symbol,
				tvl_usd = EXCLUDED.tvl_usd,
				apr_base = EXCLUDED.apr_base,
				apy_base = EXCLUDED.apy_base,
				apr_reward = EXCLUDED.apr_reward,
				apy_reward = EXCLUDED.apy_reward,
				apr_source = EXCLUDED.apr_source,
				underlying_tokens = EXCLUDED.underlying_tokens,
				url = EXCLUDED.url,
				updated_at = now()
		`,
			r.Chain,
			r.Pool,
			r.Project,
			r.Symbol,
			r.TvlUsd,
			r.AprBase,
			r.ApyBase,
			r.AprReward,
			r.ApyReward,
			r.AprSource,
			r.UnderlyingTokens,
			r.URL,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
