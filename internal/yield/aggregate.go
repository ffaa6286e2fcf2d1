package yield

import (
	"fmt"

	"github.com/shopspring/decimal"

	"yieldScope/internal/conliq"
	"yieldScope/internal/model"
)

// FeeDeltaToken0 returns the token0-equivalent fees accrued between a prior
// snapshot and the current one. A missing prior snapshot counts as zero
// prior fees. A negative delta (on-chain counter reset) is passed through
// unclamped; downstream consumers decide how to treat it.
func FeeDeltaToken0(current model.Pool, prior *model.Pool) (decimal.Decimal, error) {
	currentFees, err := feesToken0(current)
	if err != nil {
		return decimal.Zero, err
	}
	if prior == nil {
		return currentFees, nil
	}
	priorFees, err := feesToken0(*prior)
	if err != nil {
		return decimal.Zero, err
	}
	return currentFees.Sub(priorFees), nil
}

func feesToken0(pool model.Pool) (decimal.Decimal, error) {
	fees0, err := model.ParseAmount(pool.FeesToken0)
	if err != nil {
		return decimal.Zero, err
	}
	fees1, err := model.ParseAmount(pool.FeesToken1)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := model.ParseAmount(pool.Token0Price)
	if err != nil {
		return decimal.Zero, err
	}
	return fees0.Add(fees1.Mul(price)), nil
}

// PositionValueToken0 values one position at the pool's current tick, scaled
// to human units and expressed in token0. Zero-liquidity positions value to
// zero.
func PositionValueToken0(pos model.Position, currentTick int32, token0Price decimal.Decimal) (decimal.Decimal, error) {
	liquidity, err := model.ParseAmount(pos.Liquidity)
	if err != nil {
		return decimal.Zero, err
	}
	if liquidity.Sign() <= 0 {
		return decimal.Zero, nil
	}

	lower, err := model.ParseInt32(pos.TickLower.TickIdx)
	if err != nil {
		return decimal.Zero, err
	}
	upper, err := model.ParseInt32(pos.TickUpper.TickIdx)
	if err != nil {
		return decimal.Zero, err
	}
	decimals0, err := model.ParseInt32(pos.Token0.Decimals)
	if err != nil {
		return decimal.Zero, err
	}
	decimals1, err := model.ParseInt32(pos.Token1.Decimals)
	if err != nil {
		return decimal.Zero, err
	}

	amount0, amount1 := conliq.AmountsForLiquidity(liquidity, lower, upper, currentTick)
	adjusted0 := amount0.Shift(-decimals0)
	adjusted1 := amount1.Shift(-decimals1)
	return adjusted0.Add(adjusted1.Mul(token0Price)), nil
}

// PoolTVLToken0 sums the token0-equivalent value of every open position of a
// pool. This TVL estimate comes purely from the liquidity distribution and is
// independent of any reserve-balance reading.
func PoolTVLToken0(pool model.Pool, positions []model.Position) (decimal.Decimal, error) {
	tick, err := model.ParseInt32(pool.Tick)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pool %s tick: %w", pool.ID, err)
	}
	price, err := model.ParseAmount(pool.Token0Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pool %s token0Price: %w", pool.ID, err)
	}

	total := decimal.Zero
	for _, pos := range positions {
		value, err := PositionValueToken0(pos, tick, price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("position %s: %w", pos.ID, err)
		}
		total = total.Add(value)
	}
	return total, nil
}
