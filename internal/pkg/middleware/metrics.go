package middleware

import (
	"strconv"
	"time"

	"prompt_market/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath keeps label cardinality bounded; raw URLs would not.
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		collector.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()),
		).Inc()
		collector.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, endpoint,
		).Observe(time.Since(start).Seconds())
	}
}
