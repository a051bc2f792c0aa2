package middleware

import (
	"time"

	"quotebackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Logger writes one access log line per request, including request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		ev := utils.Log().Info()
		if status >= 500 {
			ev = utils.Log().Error()
		}
		ev.Str("module", "HTTP").
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("latency_ms", float64(latency.Microseconds())/1000.0).
			Str("ip", c.ClientIP()).
			Send()
	}
}
