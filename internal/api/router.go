package api

import (
	"time" // Cooldown duration

	"github.com/nmr14/adpoints-backend/internal/middleware" // Auth middleware
	"github.com/nmr14/adpoints-backend/internal/utils"      // Per-user locks

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter builds the gin engine with all routes attached. rdb may be nil,
// in which case response caching is disabled.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string, cooldown time.Duration) *gin.Engine {
	r := gin.Default()       // Gin router instance
	r.Use(cors.Default())    // Allow all origins, as the browser client expects
	locks := utils.NewUserLocks() // Per-user serialization for view credits

	// Public routes
	r.POST("/register", RegisterHandler(db))        // Registration endpoint
	r.POST("/login", LoginHandler(db, jwtSecret))   // Login endpoint

	// Authenticated user routes (protected by JWT)
	userGroup := r.Group("/")
	userGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	userGroup.GET("/ads", ListAdsHandler(db, rdb))                       // Ad catalog endpoint
	userGroup.POST("/ads/:id/view", ViewAdHandler(db, rdb, cooldown, locks)) // Ad view endpoint
	userGroup.POST("/redeem", RedeemHandler(db))                         // Redemption request endpoint
	userGroup.GET("/me", MeHandler(db, rdb))                             // Profile endpoint
	userGroup.GET("/me/views", ListMyViewsHandler(db, rdb))              // View history endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnlyMiddleware())
	adminGroup.POST("/ads", CreateAdHandler(db, rdb))                          // Ad creation endpoint
	adminGroup.GET("/redemptions", ListRedemptionsHandler(db))                 // Redemption listing endpoint
	adminGroup.POST("/redemptions/:id/:action", SetRedemptionStatusHandler(db)) // Redemption decision endpoint
	adminGroup.GET("/users", ListUsersHandler(db, rdb))                        // User listing endpoint

	return r
}
