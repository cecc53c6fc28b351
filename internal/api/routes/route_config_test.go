package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/handlers"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/pkg/jwt"
	"Sehat-Backend/pkg/metrics"
)

// stubHandler answers every route with 200 so the tests exercise routing and
// middleware only.
type stubHandler struct{}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func (stubHandler) UploadReport(c *fiber.Ctx) error     { return ok(c) }
func (stubHandler) GetReports(c *fiber.Ctx) error       { return ok(c) }
func (stubHandler) GetReportDetails(c *fiber.Ctx) error { return ok(c) }
func (stubHandler) AnalyzeReport(c *fiber.Ctx) error    { return ok(c) }
func (stubHandler) DeleteReport(c *fiber.Ctx) error     { return ok(c) }
func (stubHandler) AddVital(c *fiber.Ctx) error         { return ok(c) }
func (stubHandler) GetVitals(c *fiber.Ctx) error        { return ok(c) }
func (stubHandler) GetProfile(c *fiber.Ctx) error       { return ok(c) }
func (stubHandler) GetDashboard(c *fiber.Ctx) error     { return ok(c) }

var (
	_ handlers.ReportHandler  = stubHandler{}
	_ handlers.VitalHandler   = stubHandler{}
	_ handlers.ProfileHandler = stubHandler{}
)

func newTestApp(t *testing.T) (*fiber.App, jwt.JWTService) {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("sehat", reg)
	jwtService := jwt.NewJWTService("secret", "")

	app := fiber.New()
	cfg := Config{
		App:             app,
		ReportHandler:   stubHandler{},
		VitalHandler:    stubHandler{},
		ProfileHandler:  stubHandler{},
		AnalysisHandler: handlers.NewAnalysisHandler(nil),
		Middleware:      middleware.NewMiddleware([]string{"https://app.example.com"}, collector, zap.NewNop()),
		JWTService:      jwtService,
		Gatherer:        reg,
	}
	cfg.Setup()
	return app, jwtService
}

func bearer(t *testing.T, svc jwt.JWTService) string {
	t.Helper()
	token, err := svc.GenerateToken(uuid.New(), "patient@example.com", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRoutes_Ping(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_AuthRequired(t *testing.T) {
	app, jwtService := newTestApp(t)

	protected := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/reports"},
		{http.MethodGet, "/api/v1/reports"},
		{http.MethodGet, "/api/v1/reports/abc"},
		{http.MethodPost, "/api/v1/reports/abc/analyze"},
		{http.MethodDelete, "/api/v1/reports/abc"},
		{http.MethodPost, "/api/v1/vitals"},
		{http.MethodGet, "/api/v1/vitals"},
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/dashboard"},
	}

	for _, r := range protected {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			req := httptest.NewRequest(r.method, r.path, nil)
			req.Header.Set(fiber.HeaderAuthorization, bearer(t, jwtService))
			resp, err = app.Test(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRoutes_FunctionPreflightAndAuth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/analyze-report", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://elsewhere.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/functions/v1/analyze-report", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	var errBody map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, map[string]any{"error": domain.MessageFailedGetToken}, errBody)
}

func TestRoutes_MetricsExposed(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sehat_http_requests_total{method="GET",path="/api/ping",status="200"} 1`)
}
