package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"ai-receptionist/pkg/response"
)

const InternalKeyHeader = "X-Internal-Key"

// InternalKey rejects requests whose X-Internal-Key does not match the configured key.
// It is a no-op when no key is configured.
func (m Middleware) InternalKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.internalKey == "" {
			c.Next()
			return
		}
		got := c.GetHeader(InternalKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.InternalKey: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
