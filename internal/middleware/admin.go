package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Key hashing
)

// HashAdminKey hashes the configured admin key for AdminOnlyMiddleware.
func HashAdminKey(key string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
}

// AdminOnlyMiddleware lets a request through only when its X-API-KEY matches adminKeyHash.
func AdminOnlyMiddleware(adminKeyHash []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword(adminKeyHash, []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
