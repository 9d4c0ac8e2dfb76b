// Package quota enforces the daily cap on external provider calls. Counters
// live in the shared key-value store and are only touched through its atomic
// increment/decrement/expire primitives, never via read-modify-write.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"addrgate/internal/address/metrics"
	pkgerrors "addrgate/pkg/errors"
)

const (
	keyPrefix  = "quota:daily:"
	counterTTL = 24 * time.Hour
)

// Store provides the atomic counter operations backing the gate.
type Store interface {
	Incr(ctx context.Context, key string) (int64, error)
	Decr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Gate tracks provider usage per UTC calendar day.
type Gate struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Gate)

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// New constructs a Gate. The store and logger are required.
func New(store Store, logger *slog.Logger, opts ...Option) (*Gate, error) {
	if store == nil {
		return nil, fmt.Errorf("quota store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	g := &Gate{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Reserve claims one unit of today's quota. On success the caller may proceed
// to the external call. When the post-increment count exceeds dailyLimit the
// increment is compensated with a best-effort decrement and a quota_exceeded
// error is returned.
//
// A store failure is treated as fail-open: the call is allowed rather than
// rejected, on the grounds that a counter outage should not take the whole
// service down with it.
func (g *Gate) Reserve(ctx context.Context, dailyLimit int) error {
	key := g.counterKey()

	count, err := g.store.Incr(ctx, key)
	if err != nil {
		g.logger.WarnContext(ctx, "quota store unavailable, allowing request", "key", key, "error", err)
		return nil
	}

	if count == 1 {
		// First reservation of the day starts the 24h clock. Two concurrent
		// "first" requests may both set it; the value is idempotent.
		if err := g.store.Expire(ctx, key, counterTTL); err != nil {
			g.logger.WarnContext(ctx, "failed to set quota counter expiry", "key", key, "error", err)
		}
	}

	if count > int64(dailyLimit) {
		if _, err := g.store.Decr(ctx, key); err != nil {
			g.logger.WarnContext(ctx, "failed to compensate over-limit increment", "key", key, "error", err)
		}
		g.metrics.IncrementQuotaExceeded()
		g.logger.WarnContext(ctx, "daily quota exceeded", "key", key, "limit", dailyLimit)
		return pkgerrors.New(pkgerrors.CodeQuotaExceeded, "daily quota exceeded")
	}

	return nil
}

// counterKey scopes the counter to the current UTC calendar day.
func (g *Gate) counterKey() string {
	return keyPrefix + g.now().UTC().Format("2006-01-02")
}
