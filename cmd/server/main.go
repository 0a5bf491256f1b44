package main

import (
	"context" // context package is needed for Redis operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus" // Logrus for structured logging

	"btc_wallet/internal/api"        // HTTP handlers
	"btc_wallet/internal/config"     // Configuration
	"btc_wallet/internal/db"         // Database connection and migrations
	"btc_wallet/internal/middleware" // Admin key hashing
	"btc_wallet/internal/pricing"    // BTC/USD quotes
	"btc_wallet/internal/service"    // Ledger services
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database and make sure the schema exists
	gdb, err := db.Open(cfg.DBOptions())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	store := db.NewStorage(gdb)

	prices := priceProvider(cfg)

	adminKeyHash, err := middleware.HashAdminKey(cfg.AdminAPIKey)
	if err != nil {
		logrus.Fatalf("failed to hash admin key: %v", err)
	}
	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set, bearer tokens are disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.Routes(r, api.Deps{
		Users:        service.NewUserService(store),
		Wallets:      service.NewWalletService(store, prices),
		Transactions: service.NewTransactionService(store, prices),
		JWTSecret:    cfg.JWTSecret,
		AdminKeyHash: adminKeyHash,
	})

	logrus.WithField("port", cfg.AppPort).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// priceProvider picks a fixed or live quote source and puts the Redis cache
// in front of it when REDIS_ADDR is set and PRICE_CACHE_TTL is positive.
func priceProvider(cfg *config.Config) pricing.Provider {
	var provider pricing.Provider
	if cfg.PriceFixedUSD != "" {
		rate, err := decimal.NewFromString(cfg.PriceFixedUSD)
		if err != nil || !rate.IsPositive() {
			logrus.Fatalf("invalid PRICE_FIXED_USD %q", cfg.PriceFixedUSD)
		}
		provider = pricing.Fixed{Rate: rate}
	} else {
		provider = pricing.NewCoinbase(cfg.PriceURL)
	}

	if cfg.RedisAddr == "" || cfg.PriceCacheTTL <= 0 {
		return provider
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return pricing.NewCached(provider, redisClient, cfg.PriceCacheTTL)
}
