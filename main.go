// main.go
package main

import (
	"log"
	"os"
	"time"

	"bitecount/database"
	"bitecount/handlers"
	"bitecount/handlers/admin"
	"bitecount/middleware"
	"bitecount/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Seed the default food catalog
	database.SeedFoods()

	// Wire the gamification engine
	catalog := services.DefaultCatalog()
	gamification, err := services.NewGamificationService(database.GetDB(), catalog)
	if err != nil {
		log.Fatalf("❌ Failed to build gamification engine: %v", err)
	}
	streak := services.NewStreakService(database.GetDB(), gamification)
	handlers.InitServices(gamification, streak)

	// Background retention worker
	services.InitCleanupService(database.GetDB())
	services.GetCleanupService().Start()
	defer services.GetCleanupService().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePassword)

	// Profile routes
	profileGroup := api.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware)
	profileGroup.Get("/", handlers.GetProfile)
	profileGroup.Put("/", handlers.UpdateProfile)
	profileGroup.Put("/targets", handlers.UpdateTargets)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware, handlers.GetDashboard)

	// Food routes
	foodGroup := api.Group("/foods")
	foodGroup.Use(middleware.AuthMiddleware)
	foodGroup.Get("/", handlers.GetFoods)
	foodGroup.Post("/custom", handlers.AddCustomFood)

	// Food log routes
	foodLogGroup := api.Group("/food-logs")
	foodLogGroup.Use(middleware.AuthMiddleware)
	foodLogGroup.Get("/", handlers.GetFoodLogs)
	foodLogGroup.Post("/", handlers.AddFoodLog)

	// Exercise log routes
	exerciseGroup := api.Group("/exercise-logs")
	exerciseGroup.Use(middleware.AuthMiddleware)
	exerciseGroup.Get("/", handlers.GetExerciseLogs)
	exerciseGroup.Post("/", handlers.AddExerciseLog)

	// Water intake routes
	waterGroup := api.Group("/water")
	waterGroup.Use(middleware.AuthMiddleware)
	waterGroup.Get("/", handlers.GetWaterIntake)
	waterGroup.Post("/", handlers.AddWater)
	waterGroup.Post("/reset", handlers.ResetWater)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetAchievements)
	achievementGroup.Get("/progress", handlers.GetProgressSummary)

	// WebSocket celebration stream
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/achievements", middleware.WebSocketAuthMiddleware, handlers.AchievementsSocket())

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", admin.Login)
	adminGroup.Post("/logout", admin.Logout)

	// Protected admin routes
	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/verify", admin.VerifyToken)
	adminProtected.Get("/users", admin.GetUsers)
	adminProtected.Get("/users/:id", admin.GetUser)
	adminProtected.Delete("/users/:id", admin.DeleteUser)
	adminProtected.Get("/foods", admin.GetFoods)
	adminProtected.Post("/foods", admin.CreateFood)
	adminProtected.Put("/foods/:id", admin.UpdateFood)
	adminProtected.Delete("/foods/:id", admin.DeleteFood)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🏆 Achievement catalog loaded: %d templates", catalog.Len())

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
		if os.Getenv("ADMIN_EMAIL") == "" || os.Getenv("ADMIN_PASSWORD") == "" {
			log.Println("WARNING: Admin credentials not configured, admin routes disabled")
		}
	}
}

// Helper functions

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
