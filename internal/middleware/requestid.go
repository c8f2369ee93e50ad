package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestID propagates an inbound X-Request-ID or mints one, echoing it on
// the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader("X-Request-ID")

		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx.Writer.Header().Set("X-Request-ID", requestID)
		ctx.Set(RequestIDKey, requestID)

		ctx.Next()
	}
}
