package conliq

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// sqrtPrec is the big.Float mantissa precision for tick exponentiation.
// 1.0001^tick spans hundreds of orders of magnitude over the tick range;
// 256 bits keeps ~77 significant decimal digits through pow and sqrt.
const sqrtPrec = 256

// divScale is the number of fractional digits kept by decimal divisions.
const divScale = 38

// SqrtPriceAtTick returns sqrt(1.0001^tick), strictly increasing in tick.
func SqrtPriceAtTick(tick int32) decimal.Decimal {
	price := powTick(tick)
	sqrt := new(big.Float).SetPrec(sqrtPrec).Sqrt(price)
	rat, _ := sqrt.Rat(nil)
	return decimal.NewFromBigRat(rat, divScale)
}

// powTick computes 1.0001^tick by squaring, never leaving extended precision.
func powTick(tick int32) *big.Float {
	exp := int64(tick)
	neg := exp < 0
	if neg {
		exp = -exp
	}

	base := new(big.Float).SetPrec(sqrtPrec).SetRat(big.NewRat(10001, 10000))
	result := new(big.Float).SetPrec(sqrtPrec).SetInt64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		exp >>= 1
	}
	if neg {
		one := new(big.Float).SetPrec(sqrtPrec).SetInt64(1)
		result.Quo(one, result)
	}
	return result
}

// AmountsForLiquidity converts a position's liquidity and tick range into the
// two token amounts it currently holds, given the pool's current tick.
// Amounts are in raw token units; callers scale by token decimals.
func AmountsForLiquidity(liquidity decimal.Decimal, tickLower, tickUpper, currentTick int32) (amount0, amount1 decimal.Decimal) {
	lower := SqrtPriceAtTick(tickLower)
	upper := SqrtPriceAtTick(tickUpper)
	current := SqrtPriceAtTick(currentTick)
	one := decimal.New(1, 0)

	switch {
	case current.LessThan(lower):
		// Price below range: the position holds only token0.
		amount0 = liquidity.Mul(one.DivRound(lower, divScale).Sub(one.DivRound(upper, divScale)))
		amount1 = decimal.Zero
	case current.LessThanOrEqual(upper):
		amount0 = liquidity.Mul(one.DivRound(current, divScale).Sub(one.DivRound(upper, divScale)))
		amount1 = liquidity.Mul(current.Sub(lower))
	default:
		// Price above range: the position holds only token1.
		amount0 = decimal.Zero
		amount1 = liquidity.Mul(upper.Sub(lower))
	}
	return amount0, amount1
}
