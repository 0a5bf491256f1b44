package api

import (
	"net/http" // HTTP status codes
	"time"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"btc_wallet/internal/metrics"
	"btc_wallet/internal/middleware"
	"btc_wallet/internal/service"
	"btc_wallet/internal/utils" // Utility functions
)

// RegisterHandler creates a user and returns its id and API key
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.Register(c.Request.Context())
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"event": "user_registration",
				"error": err.Error(),
			}).Warn("User registration failed")
			respondError(c, err)
			return
		}
		metrics.UserRegistered()
		logrus.WithFields(logrus.Fields{
			"event":   "user_registration",
			"user_id": user.ID,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"user_id": user.ID, "api_key": user.APIKey})
	}
}

// TokenHandler exchanges an X-API-KEY for a bearer token
func TokenHandler(users *service.UserService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(middleware.APIKeyHeader)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing X-API-KEY"})
			return
		}
		user, err := users.Authenticate(c.Request.Context(), key)
		if err != nil {
			// Log failed attempt without echoing the key
			logrus.WithFields(logrus.Fields{
				"event":  "token_issue",
				"status": "failed",
				"ip":     c.ClientIP(),
			}).Warn("Token request with invalid API key")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, secret, time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"event":   "token_issue",
			"user_id": user.ID,
			"status":  "success",
		}).Info("Token issued")
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
