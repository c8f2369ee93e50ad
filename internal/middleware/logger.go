package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamdesk-dev/teamdesk/internal/logger"
	"go.uber.org/zap"
)

// RequestLogger writes one structured log line per handled request.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		logger.L().Info("HTTP Request",
			zap.String("request_id", ctx.GetString(RequestIDKey)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ctx.ClientIP()),
		)
	}
}
