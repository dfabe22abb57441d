package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		if status == http.StatusConflict {
			metrics.RecordVersionConflict(c.Request.Context())
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
			duration,
		)
	}
}

// Setup installs the ambient middleware chain: tracing, logging, metrics,
// then rate limiting and the response cache when enabled.
func Setup(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *logging.Logger, cfg *config.AppConfig) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(LoggingMiddleware(logger))

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	if cfg.RateLimitEnabled {
		router.Use(NewRateLimiter(logger, metrics, cfg).Middleware())
	}

	if cfg.CacheEnabled {
		router.Use(NewResponseCache(logger, metrics, cfg).Middleware())
	}
}
