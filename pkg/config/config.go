package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// RateLimitConfig is the request budget for a single endpoint.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// ResponseCacheConfig controls the response cache for a single endpoint.
type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// AppConfig general application configuration.
type AppConfig struct {
	Environment string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	CacheEnabled bool
	CacheConfigs map[string]ResponseCacheConfig

	// When set, the rate limiter keeps its counters in Redis instead of
	// process memory so replicas share a single budget.
	RedisURL string

	OTLPEndpoint string
	MetricsPort  string
}

// Load reads .env (when present) and environment overrides.
func Load() *AppConfig {
	_ = godotenv.Load()

	cfg := GetDefaultConfig()
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.OTLPEndpoint = getEnv("OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.MetricsPort = getEnv("METRICS_PORT", cfg.MetricsPort)

	if os.Getenv("RATE_LIMIT_DISABLED") == "true" {
		cfg.RateLimitEnabled = false
	}
	if os.Getenv("CACHE_DISABLED") == "true" {
		cfg.CacheEnabled = false
	}

	return cfg
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:      "development",
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"POST /auth": {
				Requests: 10,
				Window:   time.Minute,
			},
			"GET /todos": {
				Requests: 100,
				Window:   time.Minute,
			},
			"POST /todos": {
				Requests: 20,
				Window:   time.Minute,
			},
			"POST /todos/bulk-create": {
				Requests: 10,
				Window:   time.Minute,
			},
			"POST /todos/bulk-delete": {
				Requests: 10,
				Window:   time.Minute,
			},
			"default": {
				Requests: 60,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]ResponseCacheConfig{
			"/todos": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
			"default": {
				TTL:     time.Second,
				Enabled: false,
			},
		},
		OTLPEndpoint: "localhost:4317",
		MetricsPort:  "9090",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
