package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
)

// ObservabilityMiddleware records per-request metrics and a structured
// log line correlated with the active trace.
func ObservabilityMiddleware(logger *logging.AppLogger, appMetrics *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if appMetrics != nil {
			appMetrics.IncrementActiveConnections(c.Request.Context())
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		if appMetrics != nil {
			appMetrics.DecrementActiveConnections(c.Request.Context())
			appMetrics.RecordRequest(c.Request.Context(), c.Request.Method, path, strconv.Itoa(status), duration)
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		}

		if status >= 500 {
			logger.ErrorCtx(c.Request.Context(), "Request failed", fields...)
		} else {
			logger.InfoCtx(c.Request.Context(), "Request completed", fields...)
		}
	}
}
