package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecureHeaders sets browser hardening headers. Responses carry per-user data, so nothing is cached.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
