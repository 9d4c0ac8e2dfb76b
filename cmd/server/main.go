package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"addrgate/internal/address/cache"
	"addrgate/internal/address/handler"
	"addrgate/internal/address/metrics"
	"addrgate/internal/address/orchestrator"
	"addrgate/internal/address/provider/smarty"
	"addrgate/internal/address/quota"
	"addrgate/internal/apikey"
	"addrgate/internal/platform/config"
	"addrgate/internal/platform/httpserver"
	"addrgate/internal/platform/logger"
	platformredis "addrgate/internal/platform/redis"
	httptransport "addrgate/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	m := metrics.New()

	addressCache, err := cache.New(cache.NewRedisStore(redisClient.Client), log,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithMetrics(m),
	)
	if err != nil {
		log.Error("cache init failed", "error", err)
		os.Exit(1)
	}

	gate, err := quota.New(quota.NewRedisStore(redisClient.Client), log,
		quota.WithMetrics(m),
	)
	if err != nil {
		log.Error("quota gate init failed", "error", err)
		os.Exit(1)
	}

	smartyClient, err := smarty.New(smarty.Credentials{
		AuthID:    cfg.SmartyAuthID,
		AuthToken: cfg.SmartyAuthToken,
	})
	if err != nil {
		log.Error("smarty client init failed", "error", err)
		os.Exit(1)
	}

	orch, err := orchestrator.New(gate, smartyClient, cfg.DailyQuotaLimit, log,
		orchestrator.WithTimeout(cfg.ProviderTimeout),
		orchestrator.WithMetrics(m),
	)
	if err != nil {
		log.Error("orchestrator init failed", "error", err)
		os.Exit(1)
	}

	addressHandler := handler.New(addressCache, orch, log, m)

	router := httptransport.NewRouter(
		addressHandler,
		apikey.NewRedisStore(redisClient.Client),
		redisClient,
		log,
		httptransport.Config{AuthDisabled: cfg.AuthDisabled},
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting addrgate", "addr", cfg.Addr, "auth_disabled", cfg.AuthDisabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
