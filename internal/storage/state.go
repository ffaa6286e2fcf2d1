package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RefreshState tracks the last successful refresh.
type RefreshState struct {
	LastRefreshUnix int64  `json:"last_refresh_unix"`
	Records         int    `json:"records"`
	UpdatedAt       string `json:"updated_at"`
}

// StateStore persists refresh state to disk so operators can monitor
// staleness. An empty path disables it.
type StateStore struct {
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

func (s *StateStore) Load() (RefreshState, bool, error) {
	if s.path == "" {
		return RefreshState{}, false, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RefreshState{}, false, nil
		}
		return RefreshState{}, false, fmt.Errorf("read state: %w", err)
	}

	var state RefreshState
	if err := json.Unmarshal(data, &state); err != nil {
		return RefreshState{}, false, fmt.Errorf("parse state: %w", err)
	}
	return state, true, nil
}

func (s *StateStore) Save(refreshedAt time.Time, records int) error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	state := RefreshState{
		LastRefreshUnix: refreshedAt.Unix(),
		Records:         records,
		UpdatedAt:       time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write state tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}

	return nil
}
