// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agriloop/agriloop-backend/internal/config"
	"github.com/agriloop/agriloop-backend/internal/handlers"
	"github.com/agriloop/agriloop-backend/internal/metrics"
	"github.com/agriloop/agriloop-backend/internal/middleware"
	"github.com/agriloop/agriloop-backend/internal/models"
	"github.com/agriloop/agriloop-backend/internal/services"
	"github.com/agriloop/agriloop-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db, storageService)
	catalogService := services.NewCatalogService(db, cfg)
	orderService := services.NewOrderService(db)
	reportService := services.NewReportService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	verificationHandler := handlers.NewVerificationHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(metrics.Middleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check and metrics
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  cfg.Database.Driver,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
		}
		api.GET("/verify-email", verificationHandler.VerifyEmail)
		api.POST("/logout", middleware.AuthRequired(), authHandler.Logout)

		// Profile routes
		profile := api.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.POST("/payment-qr", middleware.UploadRateLimit(), profileHandler.UploadPaymentQR)
			profile.DELETE("/payment-qr", profileHandler.DeletePaymentQR)
		}

		// Seller routes
		seller := api.Group("/seller")
		seller.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleSeller))
		{
			seller.GET("/items", catalogHandler.ListSellerItems)
			seller.DELETE("/items/:id", catalogHandler.DeleteItem)
			seller.GET("/orders", orderHandler.ListSellerOrders)
			seller.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
			seller.GET("/dashboard", reportHandler.SellerDashboard)
		}
		api.POST("/items", middleware.AuthRequired(), middleware.RoleRequired(models.RoleSeller), catalogHandler.AddItem)

		// Marketplace feed is open to any authenticated role; own listings
		// are filtered out in the query.
		api.GET("/marketplace", middleware.AuthRequired(), catalogHandler.ListMarketplace)

		// Buyer routes
		buyer := api.Group("/buyer")
		buyer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleBuyer))
		{
			buyer.GET("/orders", orderHandler.ListBuyerOrders)
			buyer.GET("/dashboard", reportHandler.BuyerDashboard)
		}
		api.POST("/orders", middleware.AuthRequired(), middleware.RoleRequired(models.RoleBuyer), orderHandler.CreateOrder)

		// Leaderboard is visible to both roles
		api.GET("/leaderboard", middleware.AuthRequired(), reportHandler.Leaderboard)
	}

	return r
}
