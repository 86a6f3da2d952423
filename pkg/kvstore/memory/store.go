// Package memory provides an in-memory implementation of the key-value store.
//
// Nothing is persisted across process restarts. The store exists for tests
// and for ephemeral sessions where durability is explicitly not wanted.
package memory

import (
	"context"
	"sync"

	"github.com/lunahealth/cyclecare-go/pkg/kvstore"
)

// Store implements kvstore.Store with a process-local map.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStore creates a new empty in-memory key-value store.
func NewStore() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Get retrieves the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, kvstore.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close releases the store. The in-memory store has nothing to release.
func (s *Store) Close() error {
	return nil
}
