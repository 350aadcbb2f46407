// Package memory provides an in-memory implementation of the
// qondesk.OptionStore interface. This implementation is primarily intended
// for testing and development.
package memory

import (
	"context"
	"fmt"
	"sync"
)

// Store implements qondesk.OptionStore using an in-memory map.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory option store.
func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get implements qondesk.OptionStore.
func (s *Store) Get(ctx context.Context, key, def string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return def, nil
	}
	return value, nil
}

// Set implements qondesk.OptionStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
