package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"dastarkhan/pkg/logger"
)

// Logger middleware puts log into the request context and logs each
// request with timing and status.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		entry := log.WithContext(c.Request.Context())
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		if c.Writer.Status() >= 500 {
			entry.Errorw("http request", append(fields, "error", c.Errors.String())...)
			return
		}
		entry.Infow("http request", fields...)
	}
}
