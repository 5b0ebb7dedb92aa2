package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/metrics"
)

// Metrics records request count and latency per route template, so
// /api/top-gainers/2024-01-02 and /api/top-gainers/2024-01-03 share a series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
