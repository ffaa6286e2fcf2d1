package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yieldScope/internal/model"
)

func positionsServer(t *testing.T, pageSizes []int, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if *calls >= len(pageSizes) {
			t.Errorf("unexpected page request %d", *calls)
			return
		}
		count := pageSizes[*calls]
		*calls++

		positions := make([]model.Position, count)
		for i := range positions {
			positions[i] = model.Position{
				ID:        fmt.Sprintf("%d", i),
				TickLower: model.TickRef{TickIdx: "-100"},
				TickUpper: model.TickRef{TickIdx: "100"},
				Liquidity: "1",
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"positions": positions},
		})
	}))
}

func TestPoolPositionsPagination(t *testing.T) {
	var calls int
	server := positionsServer(t, []int{1000, 1000, 400}, &calls)
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 1, BaseDelay: time.Millisecond, PageSize: 1000}, nil)
	source := NewSource(client, Endpoints{Positions: server.URL})

	got, err := source.PoolPositions(context.Background(), "0xpool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2400 {
		t.Fatalf("positions = %d, want 2400", len(got))
	}
	if calls != 3 {
		t.Fatalf("page requests = %d, want 3", calls)
	}
}

func TestPoolPositionsEmptyPool(t *testing.T) {
	var calls int
	server := positionsServer(t, []int{0}, &calls)
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 1, BaseDelay: time.Millisecond, PageSize: 1000}, nil)
	source := NewSource(client, Endpoints{Positions: server.URL})

	got, err := source.PoolPositions(context.Background(), "0xpool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("positions = %d, want 0", len(got))
	}
	if calls != 1 {
		t.Fatalf("page requests = %d, want 1", calls)
	}
}

func TestBlockBefore(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		json.Unmarshal(body, &req)
		query = req.Query
		w.Write([]byte(`{"data":{"blocks":[{"number":"2650000"}]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 1, BaseDelay: time.Millisecond}, nil)
	source := NewSource(client, Endpoints{Blocks: server.URL})

	at := time.Unix(1_700_000_000, 0).UTC()
	got, err := source.BlockBefore(context.Background(), at, 24*time.Hour, time.Minute, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2650000 {
		t.Fatalf("block = %d, want 2650000", got)
	}

	target := at.Unix() - 86400
	if !strings.Contains(query, fmt.Sprintf("timestamp_lt: %d", target)) {
		t.Fatalf("query missing upper bound %d: %s", target, query)
	}
	if !strings.Contains(query, fmt.Sprintf("timestamp_gt: %d", target-60)) {
		t.Fatalf("query missing lower bound %d: %s", target-60, query)
	}
}

func TestBlockBeforeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"blocks":[]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{MaxAttempts: 1, BaseDelay: time.Millisecond}, nil)
	source := NewSource(client, Endpoints{Blocks: server.URL})

	got, err := source.BlockBefore(context.Background(), time.Now(), 24*time.Hour, time.Minute, 2649799)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2649799 {
		t.Fatalf("block = %d, want fallback 2649799", got)
	}
}
