// Package httptransport assembles the public router: platform middleware,
// health and metrics endpoints, and the API-key-guarded validation routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"addrgate/internal/address/handler"
	"addrgate/internal/apikey"
	"addrgate/internal/platform/middleware"
	"addrgate/pkg/httputil"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config carries router assembly options.
type Config struct {
	// AuthDisabled skips API key enforcement. Local development only.
	AuthDisabled bool
}

// NewRouter wires the full HTTP surface. Validation routes live under /v1 and
// require an API key unless auth is disabled; health and metrics are open.
func NewRouter(
	addressHandler *handler.Handler,
	keys apikey.Store,
	redisHealth HealthChecker,
	logger *slog.Logger,
	cfg Config,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)

	r.Get("/health", handleHealth(redisHealth))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		if !cfg.AuthDisabled {
			v1.Use(apikey.RequireKey(keys, logger))
		}
		addressHandler.Register(v1)
	})

	return r
}

// handleHealth reports process liveness and Redis reachability. A degraded
// store is reported but does not fail the endpoint: the cache and quota gate
// both fail open, so the service stays usable without Redis.
func handleHealth(redisHealth HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "redis": "ok"}
		if redisHealth == nil {
			status["redis"] = "disabled"
		} else if err := redisHealth.Health(r.Context()); err != nil {
			status["redis"] = "unavailable"
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
