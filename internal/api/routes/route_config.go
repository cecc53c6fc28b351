package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Sehat-Backend/internal/api/handlers"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	ReportHandler   handlers.ReportHandler
	VitalHandler    handlers.VitalHandler
	ProfileHandler  handlers.ProfileHandler
	AnalysisHandler handlers.AnalysisHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	Gatherer        prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Reports()
	c.Vitals()
	c.Profile()
	c.Functions()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Gatherer != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.Middleware.AuthMiddleware(c.JWTService))
	reports.Post("", c.ReportHandler.UploadReport)
	reports.Get("", c.ReportHandler.GetReports)
	reports.Get("/:id", c.ReportHandler.GetReportDetails)
	reports.Post("/:id/analyze", c.ReportHandler.AnalyzeReport)
	reports.Delete("/:id", c.ReportHandler.DeleteReport)
}

func (c *Config) Vitals() {
	vitals := c.App.Group("/api/v1/vitals", c.Middleware.AuthMiddleware(c.JWTService))
	vitals.Post("", c.VitalHandler.AddVital)
	vitals.Get("", c.VitalHandler.GetVitals)
}

func (c *Config) Profile() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	c.App.Get("/api/v1/profile", auth, c.ProfileHandler.GetProfile)
	c.App.Get("/api/v1/dashboard", auth, c.ProfileHandler.GetDashboard)
}

func (c *Config) Functions() {
	functions := c.App.Group("/functions/v1", c.AnalysisHandler.CORS)
	// preflight is answered before auth
	functions.Options("/analyze-report", c.AnalysisHandler.Preflight)
	functions.Post("/analyze-report", c.Middleware.FunctionAuthMiddleware(c.JWTService), c.AnalysisHandler.AnalyzeReport)
}
