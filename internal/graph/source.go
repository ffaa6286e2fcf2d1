package graph

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"yieldScope/internal/model"
)

// Endpoints names the subgraph deployments for each data domain.
type Endpoints struct {
	Pools     string
	Positions string
	Blocks    string
}

// Source binds a Client to the endpoints of one deployment and exposes the
// typed reads the yield engine needs.
type Source struct {
	client    *Client
	endpoints Endpoints
}

func NewSource(client *Client, endpoints Endpoints) *Source {
	return &Source{client: client, endpoints: endpoints}
}

type poolsResult struct {
	Pools []model.Pool `json:"pools"`
}

type positionsResult struct {
	Positions []model.Position `json:"positions"`
}

type blocksResult struct {
	Blocks []struct {
		Number string `json:"number"`
	} `json:"blocks"`
}

// CurrentPools fetches the top pools ordered by TVL.
func (s *Source) CurrentPools(ctx context.Context) ([]model.Pool, error) {
	var result poolsResult
	if err := s.client.Query(ctx, s.endpoints.Pools, poolsQuery(s.client.cfg.PageSize), &result); err != nil {
		return nil, err
	}
	return result.Pools, nil
}

// PoolsAtBlock fetches pool fee counters pinned to a historical block.
func (s *Source) PoolsAtBlock(ctx context.Context, block uint64) ([]model.Pool, error) {
	var result poolsResult
	if err := s.client.Query(ctx, s.endpoints.Pools, poolsAtBlockQuery(block, s.client.cfg.PageSize), &result); err != nil {
		return nil, err
	}
	return result.Pools, nil
}

// PoolPositions pages through every open position of a pool. Pages of
// PageSize records are fetched until a short page signals the end of the
// set; a pool with no positions yields an empty slice, not an error.
func (s *Source) PoolPositions(ctx context.Context, poolID string) ([]model.Position, error) {
	var all []model.Position
	for page := 0; ; page++ {
		var result positionsResult
		query := positionsQuery(poolID, s.client.cfg.PageSize, page*s.client.cfg.PageSize)
		if err := s.client.Query(ctx, s.endpoints.Positions, query, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Positions...)
		if len(result.Positions) < s.client.cfg.PageSize {
			return all, nil
		}
	}
}

// BlockBefore resolves the most recent block whose timestamp falls inside
// (at-age-tolerance, at-age). An empty window is normal during index lag and
// returns the fallback block.
func (s *Source) BlockBefore(ctx context.Context, at time.Time, age, tolerance time.Duration, fallback uint64) (uint64, error) {
	target := at.Unix() - int64(age.Seconds())
	query := blocksQuery(target-int64(tolerance.Seconds()), target)

	var result blocksResult
	if err := s.client.Query(ctx, s.endpoints.Blocks, query, &result); err != nil {
		return 0, err
	}
	if len(result.Blocks) == 0 {
		return fallback, nil
	}

	number, err := strconv.ParseUint(result.Blocks[0].Number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse block number %q: %w", result.Blocks[0].Number, err)
	}
	return number, nil
}
