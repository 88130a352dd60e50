package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // Cooldown duration

	"github.com/nmr14/adpoints-backend/internal/api"    // Custom package for API handlers
	"github.com/nmr14/adpoints-backend/internal/config" // Custom package for configuration
	"github.com/nmr14/adpoints-backend/internal/db"     // Custom package for database setup

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The signing key has no safe default
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	// Open (creating if needed) the SQLite database
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to open DB: %v", err) // Fatal error if DB open fails
	}

	// Create tables on first run
	if err := db.AutoMigrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Create the configured admin account if absent
	if err := db.BootstrapAdmin(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logrus.Fatalf("failed to bootstrap admin: %v", err)
	}

	// Setup Redis client when caching is configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin with all routes
	r := api.NewRouter(gdb, redisClient, cfg.JWTSecret, time.Duration(cfg.CooldownMS)*time.Millisecond)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.Port) // Log server start
	r.Run(":" + cfg.Port)                        // Start the server on port cfg.Port
}
