package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStateStore(path)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v, want absent", ok, err)
	}

	refreshedAt := time.Unix(1_700_000_000, 0)
	if err := store.Save(refreshedAt, 42); err != nil {
		t.Fatalf("save: %v", err)
	}

	state, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if state.LastRefreshUnix != refreshedAt.Unix() {
		t.Fatalf("last refresh = %d, want %d", state.LastRefreshUnix, refreshedAt.Unix())
	}
	if state.Records != 42 {
		t.Fatalf("records = %d, want 42", state.Records)
	}
}

func TestStateStoreDisabled(t *testing.T) {
	store := NewStateStore("")
	if err := store.Save(time.Now(), 1); err != nil {
		t.Fatalf("save on disabled store: %v", err)
	}
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("load on disabled store: ok=%v err=%v", ok, err)
	}
}
