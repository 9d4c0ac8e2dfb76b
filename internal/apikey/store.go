package apikey

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Redis set holding the allowed key hashes.
const allowedHashesKey = "allowed_api_key_hashes"

// Store checks key hashes against the allowed set.
type Store interface {
	IsAllowed(ctx context.Context, hash string) (bool, error)
	Add(ctx context.Context, hash string) error
}

// RedisStore keeps the allowed hash set in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IsAllowed(ctx context.Context, hash string) (bool, error) {
	return s.client.SIsMember(ctx, allowedHashesKey, hash).Result()
}

func (s *RedisStore) Add(ctx context.Context, hash string) error {
	return s.client.SAdd(ctx, allowedHashesKey, hash).Err()
}

// InMemoryStore is a map-backed Store for tests and local development.
type InMemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{hashes: make(map[string]struct{})}
}

func (s *InMemoryStore) IsAllowed(_ context.Context, hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[hash]
	return ok, nil
}

func (s *InMemoryStore) Add(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[hash] = struct{}{}
	return nil
}
