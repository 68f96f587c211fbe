package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"slotly/models"
	"slotly/utils"
)

const identityKey = "authUser"

// JWTAuthMiddleware validates the bearer token, rejects revoked tokens, and
// places the resolved acting identity in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Invalid token"})
			return
		}

		revoked, err := utils.IsTokenRevoked(c.Request.Context(), utils.HashToken(tokenString))
		if err != nil || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Token revoked"})
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// RequireAdmin gates a route group to admins acting as themselves.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok || !identity.HasRole(models.RoleAdmin) || identity.IsImpersonating() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "message": "Forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the acting identity set by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (models.AuthUser, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.AuthUser{}, false
	}
	identity, ok := value.(models.AuthUser)
	return identity, ok
}
