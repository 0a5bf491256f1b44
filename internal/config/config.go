package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"

	"github.com/joho/godotenv" // For loading .env files

	"btc_wallet/internal/db"
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	DBDriver      string        // sqlite, mysql or postgres
	DBPath        string        // sqlite database file
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name
	AdminAPIKey   string        // Key granting access to admin routes
	JWTSecret     string        // JWT secret key
	RedisAddr     string        // Redis server address, empty disables the price cache
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	PriceURL      string        // Spot price endpoint
	PriceCacheTTL time.Duration // How long a cached quote is served, 0 disables the cache
	PriceFixedUSD string        // Fixed BTC/USD rate instead of the live quote
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := strconv.Atoi(getenv("PRICE_CACHE_TTL", "30"))
	if err != nil || ttl < 0 {
		ttl = 30
	}
	return &Config{
		AppPort:       getenv("APP_PORT", "8000"),
		DBDriver:      getenv("DB_DRIVER", db.DriverSQLite),
		DBPath:        getenv("DB_PATH", "wallet.sqlite3"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		AdminAPIKey:   getenv("ADMIN_API_KEY", "ADMIN-API-KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		PriceURL:      os.Getenv("PRICE_URL"),
		PriceCacheTTL: time.Duration(ttl) * time.Second,
		PriceFixedUSD: os.Getenv("PRICE_FIXED_USD"),
		IsProd:        os.Getenv("IS_PROD") == "true",
	}
}

// DBOptions returns the database connection settings.
func (c *Config) DBOptions() db.Options {
	return db.Options{
		Driver:   c.DBDriver,
		Path:     c.DBPath,
		User:     c.DBUser,
		Password: c.DBPassword,
		Host:     c.DBHost,
		Port:     c.DBPort,
		Name:     c.DBName,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
