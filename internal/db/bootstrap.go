package db

import (
	"errors" // Error inspection

	"github.com/nmr14/adpoints-backend/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// BootstrapAdmin creates the configured admin account at startup if it does
// not exist yet. A blank username or password disables bootstrapping.
func BootstrapAdmin(gdb *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil // No admin configured
	}
	var existing domain.User
	err := gdb.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil // Admin already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err // Unexpected storage error
	}
	// Hash the configured password before storing
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{Username: username, Password: string(hash), Role: "admin"}
	if err := gdb.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Admin account created") // Log bootstrap
	return nil
}
