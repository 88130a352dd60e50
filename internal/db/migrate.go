package db

import (
	"github.com/nmr14/adpoints-backend/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open opens (creating if needed) the SQLite database at the given path
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.User{}, &domain.Ad{}, &domain.View{}, &domain.Redemption{})
}

// Migrate opens the database at path and performs automatic migration
func Migrate(path string) {
	gdb, err := Open(path) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := AutoMigrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
