package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"learnsphere/backend/config"
	"learnsphere/backend/middleware"
	"learnsphere/backend/routes"
	"learnsphere/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalw("Error initializing database", "error", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Uploaded files
	store := utils.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	app.Static("/static", cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(app, db, cfg, store)

	// Start server
	logger.Infow("starting server", "port", cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
