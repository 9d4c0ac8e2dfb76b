package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"addrgate/internal/address/cache"
	"addrgate/internal/address/handler"
	"addrgate/internal/apikey"
)

type stubHealth struct {
	err error
}

func (s stubHealth) Health(context.Context) error {
	return s.err
}

func newTestRouter(t *testing.T, keys apikey.Store, health HealthChecker, cfg Config) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	addressCache, err := cache.New(cache.NewInMemoryStore(), logger)
	require.NoError(t, err)

	// The validator is never invoked by these tests; routing and auth reject
	// or short-circuit first.
	h := handler.New(addressCache, nil, logger, nil)

	return NewRouter(h, keys, health, logger, cfg)
}

func TestRouter_Health(t *testing.T) {
	t.Run("healthy redis", func(t *testing.T) {
		router := newTestRouter(t, apikey.NewInMemoryStore(), stubHealth{}, Config{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"redis":"ok"`)
	})

	t.Run("redis down is reported but not fatal", func(t *testing.T) {
		router := newTestRouter(t, apikey.NewInMemoryStore(), stubHealth{err: errors.New("dial tcp: refused")}, Config{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"redis":"unavailable"`)
	})
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, apikey.NewInMemoryStore(), stubHealth{}, Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := newTestRouter(t, apikey.NewInMemoryStore(), stubHealth{}, Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	router.ServeHTTP(rec, req)

	require.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_APIKeyEnforcement(t *testing.T) {
	keys := apikey.NewInMemoryStore()
	raw, hash, err := apikey.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, keys.Add(context.Background(), hash))

	router := newTestRouter(t, keys, stubHealth{}, Config{})

	post := func(apiKey string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate-address", strings.NewReader(`{}`))
		if apiKey != "" {
			req.Header.Set(apikey.HeaderName, apiKey)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing key", func(t *testing.T) {
		rec := post("")
		require.Equal(t, http.StatusForbidden, rec.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, false, body["success"])
	})

	t.Run("unknown key", func(t *testing.T) {
		rec := post("addr_vk_bogus")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid key reaches the handler", func(t *testing.T) {
		rec := post(raw)
		// Empty body fails validation inside the handler, proving the
		// request passed auth.
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("auth disabled skips enforcement", func(t *testing.T) {
		open := newTestRouter(t, keys, stubHealth{}, Config{AuthDisabled: true})
		req := httptest.NewRequest(http.MethodPost, "/v1/validate-address", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
