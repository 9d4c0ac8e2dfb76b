package apikey

import (
	"log/slog"
	"net/http"

	pkgerrors "addrgate/pkg/errors"
	"addrgate/pkg/httputil"
	"addrgate/pkg/requestcontext"
)

// HeaderName carries the raw API key on inbound requests.
const HeaderName = "X-API-Key"

// RequireKey rejects requests whose X-API-Key hash is not in the allowed set.
// Unlike the cache, auth fails closed: a store outage rejects the request
// rather than letting unauthenticated traffic through.
func RequireKey(store Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := r.Header.Get(HeaderName)
			if raw == "" {
				httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeForbidden, "Missing API Key"))
				return
			}

			hash := HashKey(raw)
			allowed, err := store.IsAllowed(ctx, hash)
			if err != nil {
				logger.ErrorContext(ctx, "api key store lookup failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "auth store unavailable"))
				return
			}
			if !allowed {
				logger.WarnContext(ctx, "rejected invalid api key",
					"request_id", requestcontext.RequestID(ctx),
					"key_id", hash[:8],
				)
				httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeForbidden, "Invalid API Key"))
				return
			}

			// Expose a short hash prefix for log correlation, never the raw key.
			ctx = requestcontext.WithAPIKeyID(ctx, hash[:8])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
