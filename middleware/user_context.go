// middleware/user_context.go

package middleware

import (
	"github.com/gin-gonic/gin"
)

// UserContext resolves the acting user for audit attribution. Authentication
// is handled by the fronting proxy; this trusts the forwarded header and
// falls back to a fixed identity for single-user deployments.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "local-operator"
		}
		c.Set("userID", userID)
		c.Next()
	}
}
