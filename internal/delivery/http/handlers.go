package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tlcanalytics/backend/internal/auth"
	"github.com/tlcanalytics/backend/internal/domain"
	"github.com/tlcanalytics/backend/internal/service"
)

const dateLayout = "2006-01-02"

// cacheControl advertises how long a cached aggregate/summary response stays
// acceptable. The cache itself has no TTL; staleness is the caller's call.
const cacheControl = "private, max-age=300"

// Handler contains all HTTP handlers
type Handler struct {
	aggSvc  *service.AggregationService
	jwtMgr  *auth.JWTManager
	creds   *auth.Credentials
	version string
}

// NewHandler creates a new handler
func NewHandler(aggSvc *service.AggregationService, jwtMgr *auth.JWTManager, creds *auth.Credentials, version string) *Handler {
	return &Handler{
		aggSvc:  aggSvc,
		jwtMgr:  jwtMgr,
		creds:   creds,
		version: version,
	}
}

// Root returns API information
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "NYC TLC Trip Analytics API",
		"version": h.version,
		"endpoints": fiber.Map{
			"authentication":   "/token",
			"daily_aggregates": "/api/aggregates/daily",
			"trips":            "/api/trips",
			"summary":          "/api/summary",
			"statistics":       "/api/statistics",
		},
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	if err := h.aggSvc.Health(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Store unavailable")
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": h.version,
	})
}

// Login exchanges form credentials for a bearer token
func (h *Handler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, ok := h.creds.Verify(username, password)
	if !ok {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return fiber.NewError(fiber.StatusUnauthorized, "Incorrect username or password")
	}

	token, err := h.jwtMgr.GenerateToken(user.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(domain.Token{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated principal
func (h *Handler) Me(c *fiber.Ctx) error {
	username, _ := c.Locals(principalKey).(string)
	return c.JSON(domain.User{Username: username})
}

// parseFilter validates the date range and categorical query params.
func parseFilter(c *fiber.Ctx, withBorough bool) (domain.QueryFilter, error) {
	var f domain.QueryFilter

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return f, fmt.Errorf("%w: start_date and end_date are required", domain.ErrInvalidFilter)
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return f, fmt.Errorf("%w: invalid start_date %q", domain.ErrInvalidFilter, startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return f, fmt.Errorf("%w: invalid end_date %q", domain.ErrInvalidFilter, endStr)
	}
	f.Range = domain.DateRange{Start: start, End: end}

	svc, err := domain.ParseServiceType(c.Query("service_type"))
	if err != nil {
		return f, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
	}
	f.ServiceType = svc

	if withBorough {
		f.Borough = c.Query("borough")
	}

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

func parsePage(c *fiber.Ctx) domain.PageRequest {
	return domain.PageRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", domain.DefaultPageSize),
	}
}

// mapServiceError keeps client errors, timeouts and store failures
// distinguishable at the HTTP boundary.
func mapServiceError(err error, what string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "Query timed out")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+what)
	}
}

// GetDailyAggregates returns one page of the daily rollup
func (h *Handler) GetDailyAggregates(c *fiber.Ctx) error {
	filter, err := parseFilter(c, false)
	if err != nil {
		return mapServiceError(err, "daily aggregates")
	}

	result, err := h.aggSvc.DailyAggregates(c.Context(), filter, parsePage(c))
	if err != nil {
		return mapServiceError(err, "daily aggregates")
	}

	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.JSON(result)
}

// GetTrips returns a capped sample of fact-level trip records
func (h *Handler) GetTrips(c *fiber.Ctx) error {
	filter, err := parseFilter(c, true)
	if err != nil {
		return mapServiceError(err, "trips")
	}

	result, err := h.aggSvc.Trips(c.Context(), filter, parsePage(c))
	if err != nil {
		return mapServiceError(err, "trips")
	}

	return c.JSON(result)
}

// GetSummary returns the dashboard summary cards for a range
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	filter, err := parseFilter(c, false)
	if err != nil {
		return mapServiceError(err, "summary")
	}

	result, err := h.aggSvc.Summary(c.Context(), filter)
	if err != nil {
		return mapServiceError(err, "summary")
	}

	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.JSON(result)
}

// GetStatistics returns unfiltered overall statistics
func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	result, err := h.aggSvc.Statistics(c.Context())
	if err != nil {
		return mapServiceError(err, "statistics")
	}

	return c.JSON(result)
}
