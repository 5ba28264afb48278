package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tlcanalytics/backend/internal/auth"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler, jwtMgr *auth.JWTManager) {
	// Public endpoints
	app.Get("/", handler.Root)
	app.Get("/health", handler.HealthCheck)
	app.Post("/token", handler.Login)

	// Authenticated API routes
	api := app.Group("/api", RequireAuth(jwtMgr))
	{
		api.Get("/users/me", handler.Me)
		api.Get("/aggregates/daily", handler.GetDailyAggregates)
		api.Get("/trips", handler.GetTrips)
		api.Get("/summary", handler.GetSummary)
		api.Get("/statistics", handler.GetStatistics)
	}
}
