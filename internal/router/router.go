package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/handlers"
	"github.com/campusnet/backend/internal/middleware"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
	"github.com/campusnet/backend/internal/services"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, mgClient *mongo.Client, providerAuthClient *auth.Client, jwtSecret string) {
	// AutoMigrate relational models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
		&models.Campus{},
		&models.College{},
		&models.Program{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("MySQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMySQLUserRepository(db)
	postRepo := repositories.NewMySQLPostRepository(db)
	commentRepo := repositories.NewMySQLCommentRepository(db)
	likeRepo := repositories.NewMySQLLikeRepository(db)
	followRepo := repositories.NewMySQLFollowRepository(db)
	notificationRepo := repositories.NewMySQLNotificationRepository(db)
	orgRepo := repositories.NewMySQLOrgRepository(db)
	reportRepo := repositories.NewMongoReportRepository(mgClient.Database("campusnet"))

	// --- Initialize Services ---
	socialGraph := services.NewSocialGraphService(followRepo, userRepo)
	content := services.NewContentService(postRepo, commentRepo, likeRepo, followRepo, userRepo, orgRepo)
	notifications := services.NewNotificationService(notificationRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, providerAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a session JWT) ---
	api := e.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	log.Println("Auth middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo, orgRepo, socialGraph)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(content)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(content)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	followHandler := handlers.NewFollowHandler(socialGraph)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notifications, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	reportHandler := handlers.NewReportHandler(reportRepo)
	reportHandler.RegisterReportRoutes(api)
	log.Println("Report routes configured.")

	orgHandler := handlers.NewOrgHandler(orgRepo)
	orgHandler.RegisterOrgRoutes(api)
	log.Println("Org routes configured.")

	log.Println("All routes configured.")
}
