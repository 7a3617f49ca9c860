package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/creatorhub/creator-review-api/internal/config"
	"github.com/creatorhub/creator-review-api/internal/constants"
	"github.com/creatorhub/creator-review-api/internal/database"
	"github.com/creatorhub/creator-review-api/internal/handlers"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
	"github.com/creatorhub/creator-review-api/internal/services"
	"github.com/creatorhub/creator-review-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Select media storage backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		s3Store, err := storage.NewS3Storage(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		store = s3Store
	default:
		localStore, err := storage.NewLocalStorage(cfg.LocalMediaDir, cfg.LocalMediaURL)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		store = localStore
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	homepageRepo := repository.NewHomepageRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	videoService := services.NewVideoService(videoRepo, taskRepo, userRepo, store)
	notificationService := services.NewNotificationService(notificationRepo)
	homepageService := services.NewHomepageService(homepageRepo, store)
	chatbotService := services.NewChatbotService(aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, authService)
	videoHandler := handlers.NewVideoHandler(videoService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	homepageHandler := handlers.NewHomepageHandler(homepageService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Serve uploaded media when running on local storage
	if cfg.StorageBackend != "s3" {
		r.Static(cfg.LocalMediaURL, cfg.LocalMediaDir)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Creator Review API is running",
		})
	})

	loginLimiter := middleware.NewIPRateLimiter(
		constants.LoginRateRequests, time.Minute, constants.LoginRateBurst, 10*time.Minute)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(tokenService))

		// Credential management (admin only)
		users := protected.Group("/admin/users")
		users.Use(middleware.RequireRole(models.RoleAdmin))
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Campaign tasks
		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", middleware.RequireRole(models.RoleAdmin), taskHandler.CreateTask)
			tasks.PATCH("/:id", middleware.RequireRole(models.RoleAdmin), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteTask)
		}

		// Video review workflow
		videos := protected.Group("/videos")
		{
			videos.GET("", videoHandler.ListVideos)
			videos.POST("", middleware.RequireRole(models.RoleCreator), videoHandler.UploadVideo)
			videos.GET("/:id", videoHandler.GetVideo)
			videos.PATCH("/:id/status", videoHandler.UpdateStatus)
			videos.POST("/:id/repost", middleware.RequireRole(models.RoleCreator), videoHandler.RepostVideo)
			videos.PUT("/:id/social-url", middleware.RequireRole(models.RoleCreator), videoHandler.SetSocialURL)
			videos.GET("/:id/insights", videoHandler.ListInsights)
			videos.POST("/:id/insights", middleware.RequireRole(models.RoleCreator), videoHandler.AttachInsight)
			videos.POST("/:id/utm", middleware.RequireRole(models.RoleCreator), videoHandler.AttachUTM)
			videos.POST("/:id/score", videoHandler.SubmitScore)
			videos.GET("/:id/comments", videoHandler.ListComments)
			videos.POST("/:id/comments", videoHandler.AddComment)
		}

		protected.GET("/leaderboard", videoHandler.Leaderboard)

		// Announcements
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("", middleware.RequireRole(models.RoleAdmin), notificationHandler.CreateNotification)
			notifications.PATCH("/:id", middleware.RequireRole(models.RoleAdmin), notificationHandler.UpdateNotification)
			notifications.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), notificationHandler.DeleteNotification)
		}

		// Homepage blocks; reads are public so the landing page renders
		// before login.
		api.GET("/homepage", homepageHandler.ListSections)
		homepage := protected.Group("/homepage")
		homepage.Use(middleware.RequireRole(models.RoleAdmin))
		{
			homepage.POST("", homepageHandler.CreateSection)
			homepage.DELETE("/:id", homepageHandler.DeleteSection)
		}

		// Support chatbot
		protected.POST("/chatbot/message", chatbotHandler.Message)
	}

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
