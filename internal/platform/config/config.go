package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults mirror current production behavior.
const (
	DefaultAddr            = ":8080"
	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultDailyQuotaLimit = 1000
	DefaultProviderTimeout = 5 * time.Second
	DefaultCacheTTL        = 2592000 * time.Second // 30 days
)

// Server captures process-level configuration. It is built once in main and
// passed into component constructors; nothing reads the environment after
// startup.
type Server struct {
	Addr     string
	RedisURL string

	// DailyQuotaLimit caps external provider calls per UTC day.
	DailyQuotaLimit int

	// ProviderTimeout bounds a single provider lookup.
	ProviderTimeout time.Duration

	// CacheTTL is the retention for validated address cache entries.
	CacheTTL time.Duration

	// Smarty credentials for the US street address provider.
	SmartyAuthID    string
	SmartyAuthToken string

	// AuthDisabled bypasses API key checks (local development only).
	AuthDisabled bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed numeric values are a deployment mistake and fail startup.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("ADDRGATE_ADDR", DefaultAddr),
		RedisURL:        envOr("REDIS_URL", DefaultRedisURL),
		DailyQuotaLimit: DefaultDailyQuotaLimit,
		ProviderTimeout: DefaultProviderTimeout,
		CacheTTL:        DefaultCacheTTL,
		SmartyAuthID:    os.Getenv("SMARTY_AUTH_ID"),
		SmartyAuthToken: os.Getenv("SMARTY_AUTH_TOKEN"),
		AuthDisabled:    os.Getenv("AUTH_DISABLED") == "true",
	}

	if v := os.Getenv("DAILY_QUOTA_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return Server{}, fmt.Errorf("invalid DAILY_QUOTA_LIMIT %q", v)
		}
		cfg.DailyQuotaLimit = limit
	}

	if v := os.Getenv("PROVIDER_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil || secs <= 0 {
			return Server{}, fmt.Errorf("invalid PROVIDER_TIMEOUT_SECONDS %q", v)
		}
		cfg.ProviderTimeout = time.Duration(secs * float64(time.Second))
	}

	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Server{}, fmt.Errorf("invalid CACHE_TTL_SECONDS %q", v)
		}
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
