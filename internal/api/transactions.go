package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"btc_wallet/internal/domain"
	"btc_wallet/internal/metrics"
	"btc_wallet/internal/service"
)

// TransferRequest represents a transfer request
type TransferRequest struct {
	FromAddress string `json:"from_address" binding:"required"` // Source wallet
	ToAddress   string `json:"to_address" binding:"required"`   // Destination wallet
	AmountSat   int64  `json:"amount_sat"`                      // Amount in satoshis, validated by the service
}

// TransferHandler moves satoshis from a wallet of the authenticated user
func TransferHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		tx, err := txs.Transfer(ctx, userID, req.FromAddress, req.ToAddress, req.AmountSat)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"event":   "transfer",
				"user_id": userID,
				"from":    req.FromAddress,
				"to":      req.ToAddress,
				"amount":  req.AmountSat,
				"error":   err.Error(),
			}).Warn("Transfer failed")
			respondError(c, err)
			return
		}
		metrics.TransferCommitted(tx.FeeSat)
		logrus.WithFields(logrus.Fields{
			"event":   "transfer",
			"user_id": userID,
			"tx_id":   tx.ID,
			"from":    tx.FromAddress,
			"to":      tx.ToAddress,
			"amount":  tx.AmountSat,
			"fee":     tx.FeeSat,
		}).Info("Transfer committed")

		view, err := txs.TxView(ctx, tx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// ListTransactionsHandler returns the history of all wallets of the authenticated user
func ListTransactionsHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		list, err := txs.ListUserTransactions(c.Request.Context(), userID)
		respondHistory(c, txs, list, err)
	}
}

// ListWalletTransactionsHandler returns the history of one wallet of the authenticated user
func ListWalletTransactionsHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		list, err := txs.ListWalletTransactions(c.Request.Context(), userID, c.Param("address"))
		respondHistory(c, txs, list, err)
	}
}

func respondHistory(c *gin.Context, txs *service.TransactionService, list []domain.Transaction, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := txs.TxViews(c.Request.Context(), paginate(c, list))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
