package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	Port          string // HTTP listen port
	DBPath        string // SQLite database file path
	JWTSecret     string // JWT signing key (required)
	AdminUsername string // Bootstrap admin username (optional)
	AdminPassword string // Bootstrap admin password (optional)
	CooldownMS    int64  // Minimum milliseconds between two ad views per user
	RedisAddr     string // Redis server address (cache disabled when empty)
	RedisPass     string // Redis password
	RedisDB       int    // Redis database number
	IsProd        bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cooldown := int64(30000) // Default cooldown window
	if v := os.Getenv("COOLDOWN_MS"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms >= 0 {
			cooldown = ms // Override when valid
		}
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000" // Default listen port
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./adpoints.db" // Default database file
	}
	return &Config{
		Port:          port,                           // HTTP listen port
		DBPath:        dbPath,                         // SQLite database file
		JWTSecret:     os.Getenv("JWT_SECRET"),        // JWT signing key
		AdminUsername: os.Getenv("ADMIN_USERNAME"),    // Bootstrap admin username
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),    // Bootstrap admin password
		CooldownMS:    cooldown,                       // Cooldown window in milliseconds
		RedisAddr:     os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:       redisDB,                        // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
