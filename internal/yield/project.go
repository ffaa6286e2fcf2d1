package yield

import (
	"math"

	"github.com/shopspring/decimal"
)

const daysPerYear = 365

// aprScale is the number of fractional digits kept when dividing fee deltas
// by TVL before the final float conversion.
const aprScale = 18

// Project annualizes a fee delta over TVL into simple (APR) and
// daily-compounded (APY) yield percentages. Zero or negative TVL projects to
// zero; non-finite results are coerced to zero so they never reach an output
// record.
func Project(feeDelta, tvl decimal.Decimal) (apr, apy float64) {
	if tvl.Sign() > 0 {
		ratio := feeDelta.
			Mul(decimal.NewFromInt(daysPerYear)).
			DivRound(tvl, aprScale).
			Mul(decimal.NewFromInt(100))
		apr, _ = ratio.Float64()
	}
	apr = sanitize(apr)
	return apr, CompoundAPR(apr)
}

// CompoundAPR converts an annual percentage rate into the equivalent
// daily-compounded APY percentage.
func CompoundAPR(apr float64) float64 {
	apy := (math.Pow(1+apr/daysPerYear/100, daysPerYear) - 1) * 100
	return sanitize(apy)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
