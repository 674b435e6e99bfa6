package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskmasters/internal/observability"
)

// RequestID ensures every request carries a correlation id, echoing the
// client-supplied X-Request-Id or minting one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := observability.RequestIDFromRequest(c.Request)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Next()
	}
}
