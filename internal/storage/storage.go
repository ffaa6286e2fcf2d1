package storage

import "yieldScope/internal/model"

// Storage defines a sink for yield records.
type Storage interface {
	PutYieldBatch(records []model.YieldRecord) error
}
