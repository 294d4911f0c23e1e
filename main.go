package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/controllers"
	"github.com/ningi265/quickspin/logger"
	"github.com/ningi265/quickspin/middleware"
	"github.com/ningi265/quickspin/models"
	"github.com/ningi265/quickspin/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.ServiceName)
	defer logger.Cleanup(log)

	log.Info("starting QuickSpin API server", logger.String("env", cfg.GoEnv))

	if err := config.ConnectDatabase(); err != nil {
		log.Error("failed to connect to database", logger.Error(err))
		return
	}

	if err := migrate(); err != nil {
		log.Error("failed to migrate database", logger.Error(err))
		return
	}
	log.Info("database migration completed")

	// Optional QR archive; orders work without it
	if s3Svc, err := services.InitS3Service(); err != nil {
		log.Warning("S3 unavailable, QR archive disabled", logger.Error(err))
	} else if s3Svc != nil {
		log.Info("QR archive enabled", logger.String("bucket", cfg.AWSS3Bucket))
	}

	// Notification fan-out through RabbitMQ when a broker is configured,
	// otherwise events are dropped
	if cfg.RabbitMQURL != "" {
		sink, err := services.NewAMQPSink(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Warning("RabbitMQ unavailable, notifications disabled", logger.Error(err))
		} else {
			services.SetNotificationSink(sink)
			defer sink.Close()
			log.Info("notification fan-out enabled", logger.String("exchange", cfg.RabbitMQExchange))
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	setupRouter(router)

	log.Info("server listening", logger.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", logger.Error(err))
	}
}

// migrate creates or updates the database schema
func migrate() error {
	return config.GetDB().AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Order{},
		&models.OrderService{},
		&models.OrderItem{},
		&models.Tracking{},
		&models.TrackingStep{},
		&models.Driver{},
		&models.SystemSettings{},
		&models.ServiceArea{},
	)
}

// setupRouter registers all routes and middleware. Split out from main so
// tests can mount the full API on an httptest server.
func setupRouter(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/", rootHandler)
	router.GET("/health", healthCheck)

	api := router.Group("/api")

	// Public
	api.POST("/auth/register", controllers.Register)
	api.POST("/auth/login", controllers.Login)
	api.GET("/services", controllers.GetServices)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/auth/profile", controllers.GetProfile)

		authed.POST("/orders", controllers.CreateOrder)
		authed.GET("/orders", controllers.GetOrders)
		authed.GET("/orders/status/:orderId", controllers.GetOrderStatus)
		authed.GET("/orders/:id", controllers.GetOrderByID)
		authed.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

		authed.GET("/tracking/:orderId", controllers.GetTracking)
	}

	driverOrAdmin := api.Group("")
	driverOrAdmin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver, models.RoleAdmin))
	{
		driverOrAdmin.POST("/orders/verify-qr", controllers.VerifyQRCode)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/auth/users", controllers.GetUsers)
		admin.PATCH("/auth/users/:id/status", controllers.UpdateUserStatus)

		admin.POST("/services", controllers.CreateService)
		admin.PATCH("/services/:id", controllers.UpdateService)

		admin.GET("/orders/all", controllers.GetAllOrders)

		admin.PATCH("/tracking/:orderId", controllers.UpdateTracking)

		admin.GET("/drivers", controllers.GetDrivers)
		admin.GET("/drivers/stats", controllers.GetDriverStats)
		admin.GET("/drivers/:id", controllers.GetDriverByID)
		admin.POST("/drivers", controllers.CreateDriver)
		admin.PATCH("/drivers/:id", controllers.UpdateDriver)
		admin.PATCH("/drivers/:id/status", controllers.UpdateDriverStatus)
		admin.DELETE("/drivers/:id", controllers.DeleteDriver)

		admin.GET("/system-settings", controllers.GetSystemSettings)
		admin.PUT("/system-settings", controllers.UpdateSystemSettings)
		admin.PATCH("/system-settings/pricing", controllers.UpdatePricing)
		admin.PATCH("/system-settings/business-hours", controllers.UpdateBusinessHours)
		admin.PATCH("/system-settings/service-options", controllers.UpdateServiceOptions)
		admin.GET("/system-settings/service-areas", controllers.GetServiceAreas)
		admin.POST("/system-settings/service-areas", controllers.AddServiceArea)
		admin.PATCH("/system-settings/service-areas/:areaId", controllers.UpdateServiceArea)
		admin.DELETE("/system-settings/service-areas/:areaId", controllers.DeleteServiceArea)

		admin.GET("/statistics/quick-stats", controllers.GetQuickStats)
	}
}

// rootHandler identifies the API
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "QuickSpin Laundry API is running",
	})
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "QuickSpin Laundry API is running",
	})
}
