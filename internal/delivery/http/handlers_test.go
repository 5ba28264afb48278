package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlcanalytics/backend/internal/auth"
	"github.com/tlcanalytics/backend/internal/query"
	"github.com/tlcanalytics/backend/internal/repository/postgres"
	"github.com/tlcanalytics/backend/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	store := postgres.NewMockStore()
	policy := query.NewSamplingPolicy(500)
	aggSvc := service.NewAggregationService(store, policy, 10)
	jwtMgr := auth.NewJWTManager("handler-test-secret", time.Hour)
	creds, err := auth.NewCredentials("admin", "secret")
	require.NoError(t, err)

	app := fiber.New()
	handler := NewHandler(aggSvc, jwtMgr, creds, "test")
	SetupRoutes(app, handler, jwtMgr)

	token, err := jwtMgr.GenerateToken("admin")
	require.NoError(t, err)

	return app, token
}

func authedGet(t *testing.T, app *fiber.App, token, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRootAndHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	form := strings.NewReader("username=admin&password=secret")
	req := httptest.NewRequest(http.MethodPost, "/token", form)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
}

func TestLogin_BadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	form := strings.NewReader("username=admin&password=wrong")
	req := httptest.NewRequest(http.MethodPost, "/token", form)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []string{
		"/api/users/me",
		"/api/aggregates/daily",
		"/api/trips",
		"/api/summary",
		"/api/statistics",
	}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestMe(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token, "/api/users/me")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "admin", body["username"])
}

func TestDailyAggregates_OK(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token,
		"/api/aggregates/daily?start_date=2024-01-01&end_date=2024-12-31")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, max-age=300", resp.Header.Get(fiber.HeaderCacheControl))

	body := decodeBody(t, resp)
	require.Contains(t, body, "data")
	require.Contains(t, body, "pagination")
}

func TestDailyAggregates_InvertedRange(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token,
		"/api/aggregates/daily?start_date=2024-02-01&end_date=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDailyAggregates_MissingDates(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token, "/api/aggregates/daily")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDailyAggregates_BadServiceType(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token,
		"/api/aggregates/daily?start_date=2024-01-01&end_date=2024-01-31&service_type=rickshaw")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrips_PagePastCap(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token,
		"/api/trips?start_date=2024-01-01&end_date=2024-01-31&page=10&page_size=100")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]any)
	assert.Empty(t, data)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(500), pagination["total_records"])
	assert.Equal(t, float64(5), pagination["total_pages"])
}

func TestSummary_OK(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token,
		"/api/summary?start_date=2024-01-01&end_date=2024-01-31")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, max-age=300", resp.Header.Get(fiber.HeaderCacheControl))

	body := decodeBody(t, resp)
	require.Contains(t, body, "by_service_type")
	require.Contains(t, body, "by_borough")
}

func TestStatistics_OK(t *testing.T) {
	app, token := newTestApp(t)

	resp := authedGet(t, app, token, "/api/statistics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "total_trips")
	require.Contains(t, body, "by_service_type")
	dateRange := body["date_range"].(map[string]any)
	assert.Contains(t, dateRange, "start")
	assert.Contains(t, dateRange, "end")
}
