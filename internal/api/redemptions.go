package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/nmr14/adpoints-backend/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for redemption
type RedeemRequest struct {
	Reward string `json:"reward" binding:"required"` // Reward description must be provided
}

// RedeemHandler records a pending redemption request for the caller.
// No balance check is performed and no points are deducted.
func RedeemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req RedeemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the redemption in pending status
		redemption := domain.Redemption{
			UserID: userID.(uint),            // Requesting user
			Reward: req.Reward,               // Requested reward
			Status: domain.RedemptionPending, // Awaiting admin decision
		}
		// Save the redemption request
		if err := db.Create(&redemption).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Requesting user
				"error":   err.Error(), // Error message
			}).Error("Failed to create redemption") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create redemption"})
			return
		}
		// Log the redemption request
		logrus.WithFields(logrus.Fields{
			"user_id":       userID,            // Requesting user
			"redemption_id": redemption.ID,     // New redemption ID
			"reward":        redemption.Reward, // Requested reward
		}).Info("Redemption requested")
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ListRedemptionsHandler returns every redemption across all users and
// statuses (admin only)
func ListRedemptionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		redemptions := make([]domain.Redemption, 0) // Non-nil so empty serializes as []
		// Fetch all redemptions in creation order
		if err := db.Order("id asc").Find(&redemptions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch redemptions"})
			return
		}
		c.JSON(http.StatusOK, redemptions) // Return all redemptions
	}
}

// SetRedemptionStatusHandler applies an admin decision to a redemption.
// Action "approve" maps to status approved, "reject" to rejected; anything
// else is rejected outright. Repeated valid calls overwrite the status, so
// the final state always matches the last valid call.
func SetRedemptionStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Map the action path segment to a status
		var status string
		switch c.Param("action") {
		case "approve":
			status = domain.RedemptionApproved // Approve the request
		case "reject":
			status = domain.RedemptionRejected // Reject the request
		default:
			// Any other action is invalid
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}
		// Parse the redemption ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Redemption not found"})
			return
		}
		var redemption domain.Redemption // The redemption being decided
		// The redemption must exist before updating
		if err := db.First(&redemption, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Redemption not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch redemption"})
			}
			return
		}
		// Apply the status transition
		if err := db.Model(&redemption).Update("status", status).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"redemption_id": id,          // Redemption ID
				"status":        status,      // Target status
				"error":         err.Error(), // Error message
			}).Error("Failed to update redemption") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update redemption"})
			return
		}
		// Log the decision
		logrus.WithFields(logrus.Fields{
			"redemption_id": redemption.ID,     // Redemption ID
			"user_id":       redemption.UserID, // Requesting user
			"status":        status,            // New status
		}).Info("Redemption decided")
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
