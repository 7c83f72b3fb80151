// Package memory implements kv.Store in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Store is a map guarded by an RWMutex. Contents are lost on restart.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("kv %s: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
