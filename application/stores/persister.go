package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"journeybuilder/application/ports"
	"journeybuilder/domain/events"
)

// Slot keys under which each store keeps its snapshot
const (
	JourneySlot = "journey-store"
	SegmentSlot = "segment-store"
	UISlot      = "ui-store"
)

// Persister writes store snapshots to a StateStorage. Writes are best effort:
// failures are logged and reported to metrics, never returned to the
// mutating caller. A nil Persister or one without storage does nothing.
type Persister struct {
	storage ports.StateStorage
	metrics ports.SnapshotMetrics
	logger  *zap.Logger
	timeout time.Duration
}

// NewPersister creates a persister. metrics may be nil.
func NewPersister(storage ports.StateStorage, metrics ports.SnapshotMetrics, logger *zap.Logger, timeout time.Duration) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Persister{storage: storage, metrics: metrics, logger: logger, timeout: timeout}
}

// Save serializes v and writes it under slot
func (p *Persister) Save(slot string, v any) {
	if p == nil || p.storage == nil {
		return
	}

	start := time.Now()
	data, err := json.Marshal(v)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err = p.storage.Save(ctx, slot, data)
		cancel()
	}
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.ObserveSnapshot(slot, len(data), elapsed, err)
	}
	if err != nil {
		p.logger.Warn("Failed to persist store snapshot",
			zap.String("slot", slot),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return
	}
	p.logger.Debug("Persisted store snapshot",
		zap.String("slot", slot),
		zap.Int("bytes", len(data)))
}

// Load reads the snapshot under slot into v. The bool is false when nothing
// has been saved yet.
func (p *Persister) Load(ctx context.Context, slot string, v any) (bool, error) {
	if p == nil || p.storage == nil {
		return false, nil
	}
	data, found, err := p.storage.Load(ctx, slot)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", slot, err)
	}
	if !found || len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", slot, err)
	}
	return true, nil
}

// emitter publishes domain events without letting failures reach the caller
type emitter struct {
	publisher ports.EventPublisher
	logger    *zap.Logger
	timeout   time.Duration
}

func (e emitter) emit(evts ...events.DomainEvent) {
	if e.publisher == nil || len(evts) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	var err error
	if len(evts) == 1 {
		err = e.publisher.Publish(ctx, evts[0])
	} else {
		err = e.publisher.PublishBatch(ctx, evts)
	}
	if err != nil {
		e.logger.Warn("Failed to publish domain events",
			zap.String("event_type", evts[0].GetEventType()),
			zap.Int("count", len(evts)),
			zap.Error(err))
	}
}
