package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"github.com/nmr14/adpoints-backend/internal/domain" // Importing domain models
	"github.com/nmr14/adpoints-backend/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// profileCacheKey builds the cache key for a user's profile
func profileCacheKey(userID uint) string {
	return "user:profile:" + strconv.Itoa(int(userID))
}

// viewsCacheKey builds the cache key for one page of a user's view history
func viewsCacheKey(userID uint, page, pageSize int) string {
	return "views:user:" + strconv.Itoa(int(userID)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
}

// ProfileResponse represents the authenticated user's own account
type ProfileResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Role     string `json:"role"`     // User role
	Points   int    `json:"points"`   // Current points balance
}

// MeHandler returns the caller's profile and points balance
func MeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		uid := userID.(uint)             // Authenticated user ID
		ctx := context.Background()      // Context for Redis operations
		cacheKey := profileCacheKey(uid) // Cache key for the profile
		var profile ProfileResponse      // Profile struct to hold data
		found, err := utils.GetCache(ctx, rdb, cacheKey, &profile)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"profile": profile, "cached": true})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, uid).Error; err != nil {
			// Token references a user the store no longer has
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Map user to the response format
		profile = ProfileResponse{
			ID:       user.ID,       // User ID
			Username: user.Username, // Username
			Role:     user.Role,     // User role
			Points:   user.Points,   // Points balance
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, profile, 60*time.Second)  // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"profile": profile, "cached": false}) // Return the profile
	}
}

// ListMyViewsHandler returns the caller's view history, newest first
func ListMyViewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		uid := userID.(uint) // Authenticated user ID
		page := 1            // Default page
		pageSize := 20       // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		offset := (page - 1) * pageSize               // Calculate offset
		cacheKey := viewsCacheKey(uid, page, pageSize) // Redis cache key
		ctx := context.Background()                    // Context for Redis operations
		var cached struct {
			Views      []domain.View `json:"views"`       // List of views
			Page       int           `json:"page"`        // Current page
			PageSize   int           `json:"page_size"`   // Page size
			Total      int64         `json:"total"`       // Total views
			TotalPages int           `json:"total_pages"` // Total pages
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"views":       cached.Views,      // Cached views
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total views
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		var total int64 // Total count of views
		// Count total views for pagination
		if err := db.Model(&domain.View{}).Where("user_id = ?", uid).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count views"})
			return
		}
		views := make([]domain.View, 0) // Slice to hold views
		// Fetch paginated views, newest first
		if err := db.Where("user_id = ?", uid).
			Order("timestamp desc").
			Offset(offset).
			Limit(pageSize).
			Find(&views).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch views"})
			return
		}
		// Calculate total pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := gin.H{
			"views":       views,      // List of views
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total views
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Not from cache
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return the view history
	}
}
