package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
	"github.com/Manni1403/taskboard-assessment/pkg/ratelimit"
)

// RateLimiter enforces per-endpoint request budgets. Counters live in the
// configured store: process memory by default, Redis when REDIS_URL is set.
type RateLimiter struct {
	store   ratelimit.Store
	config  map[string]config.RateLimitConfig
	logger  *logging.Logger
	metrics *telemetry.AppMetrics
}

func NewRateLimiter(logger *logging.Logger, metrics *telemetry.AppMetrics, cfg *config.AppConfig) *RateLimiter {
	var store ratelimit.Store = ratelimit.NewMemoryStore()

	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			logger.Logger.Warn("Redis unavailable, rate limiting in memory", zap.Error(err))
		} else {
			store = redisStore
		}
	}

	return &RateLimiter{
		store:   store,
		config:  cfg.RateLimitConfigs,
		logger:  logger,
		metrics: metrics,
	}
}

func NewRateLimiterWithStore(store ratelimit.Store, logger *logging.Logger, metrics *telemetry.AppMetrics, cfg *config.AppConfig) *RateLimiter {
	return &RateLimiter{
		store:   store,
		config:  cfg.RateLimitConfigs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		cfg, exists := rl.config[methodPath]
		if !exists {
			cfg, exists = rl.config[path]
			if !exists {
				cfg = rl.config["default"]
			}
		}

		if cfg.Requests <= 0 {
			c.Next()
			return
		}

		key, keyType := rl.generateKey(c, methodPath)

		count, resetTime, err := rl.store.Incr(c.Request.Context(), key, cfg.Window)
		if err != nil {
			// Fail open: a broken limiter store must not take the API down.
			rl.logger.ErrorWithTrace(c.Request.Context(), "Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := cfg.Requests - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if count > cfg.Requests {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			rl.logger.Logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", cfg.Requests),
				zap.Duration("window", cfg.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", cfg.Requests, cfg.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}

// generateKey buckets authenticated traffic per user and anonymous traffic
// per client address.
func (rl *RateLimiter) generateKey(c *gin.Context, methodPath string) (string, string) {
	slug := strings.ReplaceAll(methodPath, " ", ":")

	if userID, exists := c.Get("x-user-id"); exists {
		return fmt.Sprintf("ratelimit:%s:user_%v", slug, userID), "user"
	}

	return fmt.Sprintf("ratelimit:%s:ip_%s", slug, GetClientIP(c)), "ip"
}
