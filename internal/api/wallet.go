package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"btc_wallet/internal/metrics"
	"btc_wallet/internal/middleware"
	"btc_wallet/internal/service"
)

// currentUser returns the authenticated user id, answering 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// CreateWalletHandler opens a wallet for the authenticated user
func CreateWalletHandler(wallets *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		wallet, err := wallets.CreateWallet(ctx, userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"event":   "wallet_create",
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Wallet creation failed")
			respondError(c, err)
			return
		}
		metrics.WalletCreated()
		logrus.WithFields(logrus.Fields{
			"event":   "wallet_create",
			"user_id": userID,
			"address": wallet.Address,
		}).Info("Wallet created")

		view, err := wallets.WalletView(ctx, wallet)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// ListWalletsHandler returns every wallet of the authenticated user
func ListWalletsHandler(wallets *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		list, err := wallets.ListWallets(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		views, err := wallets.WalletViews(ctx, list)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// GetWalletHandler returns one wallet owned by the authenticated user
func GetWalletHandler(wallets *service.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		wallet, err := wallets.GetWalletOwned(ctx, userID, c.Param("address"))
		if err != nil {
			respondError(c, err)
			return
		}
		view, err := wallets.WalletView(ctx, wallet)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
