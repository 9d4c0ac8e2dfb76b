package quota

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore is a map-backed Store for tests and local development.
type InMemoryStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{counters: make(map[string]int64)}
}

func (s *InMemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

func (s *InMemoryStore) Decr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]--
	return s.counters[key], nil
}

func (s *InMemoryStore) Expire(context.Context, string, time.Duration) error {
	// Expiry is a no-op in memory; tests control time by advancing the gate's
	// clock, which changes the counter key.
	return nil
}

// Count returns the current value of a counter key.
func (s *InMemoryStore) Count(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}
