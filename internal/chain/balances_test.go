package chain

import (
	"context"
	"testing"
)

func TestBalancesTolerateIndividualFailures(t *testing.T) {
	reader := NewBalanceReader(nil, 2)
	calls := []BalanceCall{
		{Token: "not-an-address", Owner: "0x0000000000000000000000000000000000000001"},
		{Token: "0x0000000000000000000000000000000000000002", Owner: "also-bad"},
	}

	results := reader.Balances(context.Background(), calls)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for i, res := range results {
		if res.Err == nil {
			t.Fatalf("result %d: expected per-call error", i)
		}
		if res.Call != calls[i] {
			t.Fatalf("result %d: call mismatch", i)
		}
	}
}

func TestBalancesNilClient(t *testing.T) {
	reader := NewBalanceReader(nil, 1)
	calls := []BalanceCall{{
		Token: "0x0000000000000000000000000000000000000001",
		Owner: "0x0000000000000000000000000000000000000002",
	}}

	results := reader.Balances(context.Background(), calls)
	if results[0].Err == nil {
		t.Fatalf("expected error without a chain client")
	}
}
