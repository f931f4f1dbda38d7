package ports

import (
	"context"
	"time"
)

// StateStorage is a durable key-value slot store. Each store snapshot lives
// under a single key and is replaced wholesale on every save.
// This is a port in hexagonal architecture - the stores don't know about the implementation
type StateStorage interface {
	// Load returns the bytes saved under key. The bool is false when the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save replaces the value under key
	Save(ctx context.Context, key string, data []byte) error
}

// SnapshotMetrics receives the outcome of every snapshot write
type SnapshotMetrics interface {
	ObserveSnapshot(slot string, size int, elapsed time.Duration, err error)
}
