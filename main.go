package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"beauty-salon-server/config"
	"beauty-salon-server/database"
	"beauty-salon-server/jobs"
	"beauty-salon-server/middleware"
	"beauty-salon-server/routes"
	ws "beauty-salon-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Database initialization failed: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.GinMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.AuditLogMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "beauty-salon-server",
		})
	})

	// WebSocket hub for the admin console
	hub := ws.NewHub()
	go hub.Run()
	routes.InitEventHub(hub)
	router.GET("/ws/admin", func(c *gin.Context) {
		ws.ServeWebSocket(hub, c.Writer, c.Request)
	})

	// API routes
	api := router.Group("/api")
	routes.RegisterRoutes(api)

	// Background jobs
	reminderJob := jobs.NewReminderJob(hub)
	reminderJob.Start()
	defer reminderJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
