package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, scope, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found := s.records[scope][key]
	if !found {
		return nil, false, nil
	}
	// Copy so callers can't mutate the stored value.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, scope, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[scope] == nil {
		s.records[scope] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[scope][key] = stored
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[scope], key)
	return nil
}
