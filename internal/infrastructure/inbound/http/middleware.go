package delivery_http

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	ports "pinstack-post-page/internal/domain/ports/output"
)

func RequestLogger(log ports.Logger, metrics ports.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		metrics.IncrementHTTPRequests(c.Request.Method, route, strconv.Itoa(status))
		metrics.RecordHTTPRequestDuration(c.Request.Method, route, duration)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			log.Warn("HTTP request failed", attrs...)
			return
		}
		log.Debug("HTTP request handled", attrs...)
	}
}
