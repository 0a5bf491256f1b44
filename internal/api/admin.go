package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"btc_wallet/internal/service"
)

// StatisticsHandler reports the transaction count and platform profit
func StatisticsHandler(txs *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := txs.Statistics(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
