package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/router"
	"github.com/campusnet/backend/pkg/config"
	"github.com/campusnet/backend/pkg/firebase"
	"github.com/campusnet/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the identity provider client
	ctx := context.Background()
	providerApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.MySQL, db.Mongo, providerApp.AuthClient, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
