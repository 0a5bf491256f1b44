package main

import (
	"github.com/sirupsen/logrus"

	"btc_wallet/internal/config" // Configuration
	"btc_wallet/internal/db"     // Database connection and migrations
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg.DBOptions())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
}
