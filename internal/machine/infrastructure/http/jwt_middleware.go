package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/jwt"
)

const (
	authHeaderName = "Authorization"

	UserIDKey   = "userId"
	UsernameKey = "username"
	RoleKey     = "role"
)

func NewAuthMiddleware(secretKey string, tokenParser jwt.TokenParser) gin.HandlerFunc {
	secret := []byte(secretKey)

	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "missing authorization header"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid auth header"})
			return
		}

		claims, err := tokenParser.ParseToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// NewRoleMiddleware gates a route group to one role. The capability
// check itself happened at login; this only enforces the claim.
func NewRoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"errors": "operation requires role: " + requiredRole})
			return
		}

		c.Next()
	}
}
