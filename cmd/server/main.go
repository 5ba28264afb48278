package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/tlcanalytics/backend/internal/auth"
	"github.com/tlcanalytics/backend/internal/delivery/http"
	"github.com/tlcanalytics/backend/internal/query"
	"github.com/tlcanalytics/backend/internal/repository/postgres"
	"github.com/tlcanalytics/backend/internal/service"
)

const version = "1.0.0"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Running with mock data only")
		pool = nil
	} else {
		defer pool.Close()
		log.Println("Connected to PostgreSQL")
	}

	// Dependency Injection: Store
	var store service.TripStore
	if pool != nil {
		store = postgres.NewPostgresStore(pool, cfg.QueryTimeout)
	} else {
		store = postgres.NewMockStore()
	}

	// Dependency Injection: Services
	policy := query.NewSamplingPolicy(cfg.SampleCap)
	aggSvc := service.NewAggregationService(store, policy, cfg.CacheCapacity)
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to prepare credentials: %v", err)
	}

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "NYC TLC Trip Analytics API v" + version,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	handler := http.NewHandler(aggSvc, jwtMgr, creds, version)
	http.SetupRoutes(app, handler, jwtMgr)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL   string
	Port          string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	SampleCap     int
	CacheCapacity int
	QueryTimeout  time.Duration
	CORSOrigins   string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "secret"),
		SampleCap:     getEnvInt("TRIP_SAMPLE_CAP", query.DefaultSampleCap),
		CacheCapacity: getEnvInt("RESULT_CACHE_SIZE", service.DefaultCacheCapacity),
		QueryTimeout:  time.Duration(getEnvInt("QUERY_TIMEOUT_SEC", 15)) * time.Second,
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:4200"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
