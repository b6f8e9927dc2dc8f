package params

import (
	"context"
	"fmt"
	"sync"
)

// Store is the parameter-store surface the rest of the app depends on.
// Credentials (tokens, client secrets, API keys) are read and written by name.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Put(ctx context.Context, name, value string) error
}

// MemoryStore is a simple in-memory implementation for testing.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore(values map[string]string) *MemoryStore {
	if values == nil {
		values = make(map[string]string)
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	if !ok {
		return "", fmt.Errorf("parameter %q not found", name)
	}
	return v, nil
}

func (s *MemoryStore) Put(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}
