//go:build integration

package quota_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"addrgate/internal/address/quota"
	pkgerrors "addrgate/pkg/errors"
	"addrgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *quota.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = quota.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestIncrDecr() {
	ctx := context.Background()

	n, err := s.store.Incr(ctx, "counter")
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	n, err = s.store.Incr(ctx, "counter")
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.store.Decr(ctx, "counter")
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *RedisStoreSuite) TestExpire() {
	ctx := context.Background()

	_, err := s.store.Incr(ctx, "counter")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Expire(ctx, "counter", 24*time.Hour))

	ttl, err := s.redis.Client.TTL(ctx, "counter").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 23*time.Hour)
}

// TestConcurrentReservations verifies that under concurrent load against real
// Redis, at most limit reservations succeed and the counter never drifts.
func (s *RedisStoreSuite) TestConcurrentReservations() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	gate, err := quota.New(s.store, logger)
	s.Require().NoError(err)

	const limit = 10
	const attempts = 50

	var wg sync.WaitGroup
	var granted, rejected atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := gate.Reserve(ctx, limit); err != nil {
				s.Equal(pkgerrors.CodeQuotaExceeded, pkgerrors.CodeOf(err))
				rejected.Add(1)
				return
			}
			granted.Add(1)
		}()
	}
	wg.Wait()

	s.Equal(int32(limit), granted.Load())
	s.Equal(int32(attempts-limit), rejected.Load())

	// DECR compensation must leave the counter exactly at the limit.
	key := "quota:daily:" + time.Now().UTC().Format("2006-01-02")
	count, err := s.redis.Client.Get(ctx, key).Int64()
	s.Require().NoError(err)
	s.Equal(int64(limit), count)
}
