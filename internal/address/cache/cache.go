// Package cache stores validated addresses under order-invariant hash keys.
// The cache is strictly best-effort: store failures degrade to misses on read
// and are swallowed on write, so an unavailable backend never fails a request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"addrgate/internal/address/metrics"
	"addrgate/internal/address/models"
)

// ErrNotFound is returned by stores when a key has no value.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key-value backend for serialized cache entries.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Cache wraps a Store with key derivation, serialization, and the fail-open
// policy.
type Cache struct {
	store   Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Cache)

// WithTTL overrides the default 30-day entry retention.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New constructs a Cache. The store and logger are required.
func New(store Store, logger *slog.Logger, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	c := &Cache{
		store:  store,
		ttl:    2592000 * time.Second, // 30 days
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the cached standardized address for the given address text, or
// (nil, false) on a miss. Store errors are logged and reported as misses.
func (c *Cache) Get(ctx context.Context, addressText string) (*models.StandardizedAddress, bool) {
	key := DeriveKey(addressText)

	payload, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		c.logger.InfoContext(ctx, "cache miss", "key", key)
		c.metrics.IncrementCacheLookup("miss")
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed, treating as miss", "key", key, "error", err)
		c.metrics.IncrementCacheLookup("error")
		return nil, false
	}

	var addr models.StandardizedAddress
	if err := json.Unmarshal([]byte(payload), &addr); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, treating as miss", "key", key, "error", err)
		c.metrics.IncrementCacheLookup("error")
		return nil, false
	}

	c.logger.InfoContext(ctx, "cache hit", "key", key)
	c.metrics.IncrementCacheLookup("hit")
	return &addr, true
}

// Set stores a standardized address under the derived key. The write is
// fire-and-forget: failures are logged and never surface to the caller.
func (c *Cache) Set(ctx context.Context, addressText string, addr *models.StandardizedAddress) {
	key := DeriveKey(addressText)

	payload, err := json.Marshal(addr)
	if err != nil {
		c.logger.WarnContext(ctx, "cache serialization failed", "key", key, "error", err)
		return
	}

	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
