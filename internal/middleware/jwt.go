package middleware

import (
	"context"
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"btc_wallet/internal/domain"
	"btc_wallet/internal/utils" // JWT utility functions
)

// APIKeyHeader carries a user's or the administrator's API key.
const APIKeyHeader = "X-API-KEY"

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// Authenticator resolves an API key to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (domain.User, error)
}

// AuthMiddleware accepts either an X-API-KEY header or an
// "Authorization: Bearer <jwt>" header and stores the user id in the context.
func AuthMiddleware(auth Authenticator, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(APIKeyHeader); key != "" {
			user, err := auth.Authenticate(c.Request.Context(), key)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
				return
			}
			c.Set(UserIDKey, user.ID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing X-API-KEY or Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
