package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/internal/infrastructure/metrics"
)

// requestLogger emits one structured log line per request.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request served", fields...)
	}
}

// observeRequests records request counts and latency.  The templated route
// path is used as the label, never the raw URL, to keep cardinality bounded.
func observeRequests(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
