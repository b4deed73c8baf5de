package middleware

import (
	"strconv"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/logging"
	"github.com/Amanjain8795/matratv-connect-main-sub001/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs every request and feeds the prometheus HTTP metrics.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		monitoring.HttpRequestsTotal.WithLabelValues(
			c.Request.Method, c.FullPath(), strconv.Itoa(status)).Inc()
		monitoring.ResponseTimeHistogram.WithLabelValues(
			c.Request.Method, c.FullPath()).Observe(latency.Seconds())

		logging.L().Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
