package main

import (
	"github.com/nmr14/adpoints-backend/internal/config" // Custom import path (Config)
	"github.com/nmr14/adpoints-backend/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Create or update the schema at the configured SQLite path
	db.Migrate(cfg.DBPath)
}
