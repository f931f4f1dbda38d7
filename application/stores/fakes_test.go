package stores

import (
	"context"
	"errors"
	"sync"
	"time"

	"journeybuilder/domain/events"
)

type fakeStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   map[string]int
	failErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: map[string][]byte{}, saves: map[string]int{}}
}

func (f *fakeStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	return b, ok, nil
}

func (f *fakeStorage) Save(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves[key]++
	if f.failErr != nil {
		return f.failErr
	}
	f.data[key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeStorage) saveCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[key]
}

type fakeMetrics struct {
	mu       sync.Mutex
	failures int
	writes   int
}

func (m *fakeMetrics) ObserveSnapshot(_ string, _ int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if err != nil {
		m.failures++
	}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetEventType())
	}
	return out
}

var errStorageDown = errors.New("storage down")

// fixedClock returns a clock that advances one second per call
func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}
