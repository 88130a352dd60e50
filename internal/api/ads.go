package api

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"net/http"
	"strconv" // String conversion
	"time"    // Time durations

	"github.com/nmr14/adpoints-backend/internal/domain" // Importing domain models
	"github.com/nmr14/adpoints-backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const adsCacheKey = "ads:all" // Cache key for the full ad catalog

// Request struct for ad creation
type CreateAdRequest struct {
	Title        string `json:"title" binding:"required"`         // Ad title
	URL          string `json:"url" binding:"required"`           // Ad content URL
	Duration     int    `json:"duration"`                         // Duration in seconds
	RewardPoints int    `json:"reward_points" binding:"required"` // Points credited per view
}

// ListAdsHandler returns all ads in creation order
func ListAdsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		ads := make([]domain.Ad, 0) // Non-nil so an empty catalog serializes as []
		// Try to get cached catalog
		found, err := utils.GetCache(ctx, rdb, adsCacheKey, &ads)
		if err == nil && found {
			c.JSON(http.StatusOK, ads) // Return cached catalog
			return
		}
		// If not in cache, fetch from DB in creation order
		if err := db.Order("id asc").Find(&ads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ads"})
			return
		}
		_ = utils.SetCache(ctx, rdb, adsCacheKey, ads, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, ads)                                    // Return the catalog
	}
}

// CreateAdHandler creates a new ad (admin only)
func CreateAdHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAdRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Build the ad from the request
		ad := domain.Ad{
			Title:        req.Title,        // Ad title
			URL:          req.URL,          // Ad content URL
			Duration:     req.Duration,     // Duration in seconds
			RewardPoints: req.RewardPoints, // Points credited per view
		}
		// Save the new ad
		if err := db.Create(&ad).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create ad") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ad"})
			return
		}
		// Log the ad creation
		logrus.WithFields(logrus.Fields{
			"ad_id":         ad.ID,           // New ad ID
			"title":         ad.Title,        // Ad title
			"reward_points": ad.RewardPoints, // Reward per view
		}).Info("Ad created")
		// Invalidate the catalog cache so the new ad is visible immediately
		_ = utils.DeleteCache(context.Background(), rdb, adsCacheKey)
		// Return the new ad's ID
		c.JSON(http.StatusOK, gin.H{"id": ad.ID})
	}
}

// ViewAdHandler records an ad view and credits the reward, subject to the
// per-user cooldown. The caller's lock is held across the cooldown check and
// the credit transaction so two concurrent views by the same user can never
// both land inside the window.
func ViewAdHandler(db *gorm.DB, rdb *redis.Client, cooldown time.Duration, locks *utils.UserLocks) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		uid := userID.(uint) // Authenticated user ID
		// Parse the ad ID from the path; an unparseable ID cannot exist
		adID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
			return
		}
		// Serialize the cooldown check-then-credit per user
		lock := locks.Get(uid)
		lock.Lock()
		defer lock.Unlock()
		var ad domain.Ad // The ad being viewed
		// The ad must exist before any credit happens
		if err := db.First(&ad, adID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ad"})
			}
			return
		}
		now := time.Now().UnixMilli() // Current time in epoch milliseconds
		var last domain.View          // The user's most recent view
		err = db.Where("user_id = ?", uid).Order("timestamp desc").First(&last).Error
		if err == nil && now-last.Timestamp < cooldown.Milliseconds() {
			// Inside the cooldown window; nothing is mutated
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cooldown active"})
			return
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cooldown"})
			return
		}
		// Insert the view row and credit the points atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			view := domain.View{UserID: uid, AdID: ad.ID, Timestamp: now}
			// Record the view
			if err := tx.Create(&view).Error; err != nil {
				return err // Return error to rollback
			}
			// Credit the ad's reward to the user
			if err := tx.Model(&domain.User{}).Where("id = ?", uid).
				Update("points", gorm.Expr("points + ?", ad.RewardPoints)).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": uid,         // Viewer ID
				"ad_id":   ad.ID,       // Ad ID
				"error":   err.Error(), // Error message
			}).Error("View credit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "View failed"})
			return
		}
		// Log the successful credit
		logrus.WithFields(logrus.Fields{
			"user_id": uid,             // Viewer ID
			"ad_id":   ad.ID,           // Ad ID
			"reward":  ad.RewardPoints, // Credited points
		}).Info("Ad view credited")
		// Invalidate the user's cached profile and view history
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, profileCacheKey(uid))
		// Simple version: delete the first 5 history pages
		for i := 1; i <= 5; i++ {
			_ = utils.DeleteCache(ctx, rdb, viewsCacheKey(uid, i, 20))
		}
		// Return the credited amount
		c.JSON(http.StatusOK, gin.H{"success": true, "reward": ad.RewardPoints})
	}
}
