package middleware

import (
	"net/http"

	"tavolo/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the review console. The role claim is placed in
// the context by AuthMiddleware; anything but ADMIN is rejected.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists || role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
