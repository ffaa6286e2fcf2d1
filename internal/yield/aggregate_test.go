package yield

import (
	"testing"

	"github.com/shopspring/decimal"

	"yieldScope/internal/model"
)

func testPosition(id, liquidity string) model.Position {
	return model.Position{
		ID:        id,
		TickLower: model.TickRef{TickIdx: "-100"},
		TickUpper: model.TickRef{TickIdx: "100"},
		Liquidity: liquidity,
		Token0:    model.PositionToken{Decimals: "0"},
		Token1:    model.PositionToken{Decimals: "0"},
	}
}

func TestFeeDeltaToken0(t *testing.T) {
	current := model.Pool{FeesToken0: "100", FeesToken1: "50", Token0Price: "2"}
	prior := &model.Pool{FeesToken0: "40", FeesToken1: "30", Token0Price: "2"}

	delta, err := FeeDeltaToken0(current, prior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("delta = %s, want 100", delta)
	}
}

func TestFeeDeltaMissingPrior(t *testing.T) {
	current := model.Pool{FeesToken0: "100", FeesToken1: "50", Token0Price: "2"}

	delta, err := FeeDeltaToken0(current, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("delta = %s, want 200", delta)
	}
}

func TestFeeDeltaNegativePassthrough(t *testing.T) {
	current := model.Pool{FeesToken0: "10", FeesToken1: "0", Token0Price: "1"}
	prior := &model.Pool{FeesToken0: "100", FeesToken1: "0", Token0Price: "1"}

	delta, err := FeeDeltaToken0(current, prior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(decimal.NewFromInt(-90)) {
		t.Fatalf("delta = %s, want -90 (counter reset is not clamped)", delta)
	}
}

func TestPoolTVLSumsPositions(t *testing.T) {
	pool := model.Pool{ID: "p1", Tick: "0", Token0Price: "1"}
	pos1 := testPosition("1", "1000")
	pos2 := testPosition("2", "500")

	total, err := PoolTVLToken0(pool, []model.Position{pos1, pos2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one := decimal.New(1, 0)
	v1, err := PositionValueToken0(pos1, 0, one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := PositionValueToken0(pos2, 0, one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !total.Equal(v1.Add(v2)) {
		t.Fatalf("total = %s, want pointwise sum %s", total, v1.Add(v2))
	}
	if total.Sign() <= 0 {
		t.Fatalf("total = %s, want > 0", total)
	}
}

func TestPoolTVLIndependentAcrossPools(t *testing.T) {
	// Position ids collide across pools; each pool only sees its own set.
	poolA := model.Pool{ID: "a", Tick: "0", Token0Price: "1"}
	poolB := model.Pool{ID: "b", Tick: "0", Token0Price: "1"}
	positionsA := []model.Position{testPosition("1", "1000")}
	positionsB := []model.Position{testPosition("1", "2000")}

	tvlA1, err := PoolTVLToken0(poolA, positionsA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tvlB, err := PoolTVLToken0(poolB, positionsB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tvlA2, err := PoolTVLToken0(poolA, positionsA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tvlA1.Equal(tvlA2) {
		t.Fatalf("pool A TVL changed across computations: %s != %s", tvlA1, tvlA2)
	}
	if tvlA1.Equal(tvlB) {
		t.Fatalf("pool TVLs should differ: %s == %s", tvlA1, tvlB)
	}
}

func TestZeroLiquidityPositionValuesToZero(t *testing.T) {
	value, err := PositionValueToken0(testPosition("1", "0"), 0, decimal.New(1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.IsZero() {
		t.Fatalf("value = %s, want 0", value)
	}
}

func TestPositionValueScalesByDecimals(t *testing.T) {
	pos := testPosition("1", "1000")
	pos.Token0.Decimals = "6"
	pos.Token1.Decimals = "6"

	raw, err := PositionValueToken0(testPosition("1", "1000"), 0, decimal.New(1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled, err := PositionValueToken0(pos, 0, decimal.New(1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !scaled.Equal(raw.Shift(-6)) {
		t.Fatalf("scaled = %s, want %s", scaled, raw.Shift(-6))
	}
}
