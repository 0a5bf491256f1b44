package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"btc_wallet/internal/metrics"
	"btc_wallet/internal/middleware"
	"btc_wallet/internal/service"
)

// Deps are the services and secrets the HTTP surface is built from.
type Deps struct {
	Users        *service.UserService
	Wallets      *service.WalletService
	Transactions *service.TransactionService
	JWTSecret    string
	AdminKeyHash []byte // bcrypt hash of the admin API key
}

// Routes registers every endpoint on r.
func Routes(r *gin.Engine, d Deps) {
	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	// Public routes
	r.POST("/users", RegisterHandler(d.Users))
	r.POST("/token", TokenHandler(d.Users, d.JWTSecret))

	// User routes (X-API-KEY or bearer token)
	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware(d.Users, d.JWTSecret))
	auth.POST("/wallets", CreateWalletHandler(d.Wallets))
	auth.GET("/wallets", ListWalletsHandler(d.Wallets))
	auth.GET("/wallets/:address", GetWalletHandler(d.Wallets))
	auth.GET("/wallets/:address/transactions", ListWalletTransactionsHandler(d.Transactions))
	auth.POST("/transactions", TransferHandler(d.Transactions))
	auth.GET("/transactions", ListTransactionsHandler(d.Transactions))

	// Admin routes
	admin := r.Group("")
	admin.Use(middleware.AdminOnlyMiddleware(d.AdminKeyHash))
	admin.GET("/statistics", StatisticsHandler(d.Transactions))
}
