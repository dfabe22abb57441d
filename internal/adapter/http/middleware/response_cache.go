package middleware

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
	"github.com/Manni1403/taskboard-assessment/pkg/tracing"
)

// ResponseCache serves recent GET responses from memory. Entries are scoped
// per user so one account never sees another account's list.
type ResponseCache struct {
	cache   *cache.Cache
	config  map[string]config.ResponseCacheConfig
	logger  *logging.Logger
	metrics *telemetry.AppMetrics
}

type cachedResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	Timestamp  time.Time
}

func NewResponseCache(logger *logging.Logger, metrics *telemetry.AppMetrics, cfg *config.AppConfig) *ResponseCache {
	return &ResponseCache{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		config:  cfg.CacheConfigs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()

			// A successful mutation makes any cached list for this user
			// stale before the TTL runs out.
			if c.Writer.Status() < 400 {
				if userID, exists := c.Get("x-user-id"); exists {
					if id, ok := userID.(int); ok {
						rc.InvalidateUser(id, "/todos")
					}
				}
			}
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rc.config[path]
		if !exists {
			cfg = rc.config["default"]
		}

		if !cfg.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path)

		if raw, found := rc.cache.Get(cacheKey); found {
			cached := raw.(cachedResponse)

			if time.Since(cached.Timestamp) < cfg.TTL {
				_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
					attribute.String("cache.age", time.Since(cached.Timestamp).String()),
				})
				defer span.End()

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}

			rc.cache.Delete(cacheKey)
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &bodyCaptureWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			rc.cache.Set(cacheKey, cachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}, cfg.TTL)

			c.Header("X-Cache", "MISS")
		}
	}
}

func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	if userID, exists := c.Get("x-user-id"); exists {
		keyParts = append(keyParts, fmt.Sprintf("user_%v", userID))
	} else {
		keyParts = append(keyParts, fmt.Sprintf("ip_%s", GetClientIP(c)))
	}

	hash := md5.Sum([]byte(strings.Join(keyParts, "|")))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// InvalidateUser drops every cached entry belonging to a user under path.
// Called after mutations so a follow-up list read never returns stale data.
func (rc *ResponseCache) InvalidateUser(userID int, path string) {
	for key := range rc.cache.Items() {
		if strings.Contains(key, fmt.Sprintf("user_%d", userID)) && strings.Contains(key, path) {
			rc.cache.Delete(key)

			rc.logger.Logger.Debug("Cache invalidated",
				zap.String("key", key),
				zap.Int("user_id", userID),
				zap.String("path", path))
		}
	}
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
