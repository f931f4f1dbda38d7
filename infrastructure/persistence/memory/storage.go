package memory

import (
	"context"
	"sync"
)

// Storage is an in-process StateStorage. Contents are lost on exit.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStorage creates an empty storage
func NewStorage() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// Load returns a copy of the bytes saved under key
func (s *Storage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

// Save stores a copy of data under key
func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
