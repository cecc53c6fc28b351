package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/handlers"
	"Sehat-Backend/internal/api/presenters"
	"Sehat-Backend/internal/api/routes"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/internal/utils"
	"Sehat-Backend/internal/utils/mailing"
	"Sehat-Backend/internal/utils/storage"
	"Sehat-Backend/pkg/analysis"
	"Sehat-Backend/pkg/jwt"
	"Sehat-Backend/pkg/metrics"
	"Sehat-Backend/pkg/profile"
	"Sehat-Backend/pkg/report"
	"Sehat-Backend/pkg/vital"
)

const serviceName = "sehat"

// NewApp wires repositories, services and handlers onto a fiber app. reg
// receives the application metrics and backs the /metrics route.
func NewApp(ctx context.Context, db *gorm.DB, log *zap.Logger, reg *prometheus.Registry) (*fiber.App, error) {
	jwtService, err := jwt.NewJWTServiceFromConfig()
	if err != nil {
		return nil, err
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") != "production",
		// multipart overhead on top of the largest accepted report
		BodyLimit:    domain.MaxReportFileSize + 1024*1024,
		ErrorHandler: presenters.ErrorHandler,
	})
	collector := metrics.NewCollector(serviceName, reg)
	middlewares := middleware.NewMiddleware(utils.GetConfigSlice("CORS_ALLOWED_ORIGINS", nil), collector, log)
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Karachi",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx, storage.S3ConfigFromEnv())
	if err != nil {
		return nil, err
	}
	mailer, err := mailing.NewMailer(mailing.LoadMailConfig())
	if err != nil {
		return nil, err
	}
	if !mailer.Enabled() {
		log.Info("smtp not configured, report notifications disabled")
	}

	var cache *analysis.ResultCache
	if size := utils.GetConfigInt("ANALYSIS_CACHE_SIZE", 256); size > 0 {
		cache = analysis.NewResultCache(size, utils.GetConfigDuration("ANALYSIS_CACHE_TTL", time.Hour), collector)
	}

	// Repository
	reportRepository := report.NewReportRepository(db)
	vitalRepository := vital.NewVitalRepository(db)
	profileRepository := profile.NewProfileRepository(db)

	// Service
	analysisService := analysis.NewAnalysisService(analysis.Config{
		URL:     utils.GetConfig("AI_GATEWAY_URL"),
		APIKey:  utils.GetConfig("AI_GATEWAY_API_KEY"),
		Model:   utils.GetConfig("AI_MODEL"),
		Timeout: utils.GetConfigDuration("AI_TIMEOUT", analysis.DefaultTimeout),
	}, cache, collector, log)
	if utils.GetConfig("AI_GATEWAY_API_KEY") == "" {
		log.Warn("AI_GATEWAY_API_KEY not set, analysis requests will fail")
	}
	reportService := report.NewReportService(
		reportRepository,
		s3,
		analysisService,
		mailer,
		utils.GetConfig("APP_URL"),
		collector,
		log,
	)
	vitalService := vital.NewVitalService(vitalRepository, collector, log)
	profileService := profile.NewProfileService(profileRepository, reportRepository, vitalRepository)

	// Handler
	reportHandler := handlers.NewReportHandler(reportService, validator)
	vitalHandler := handlers.NewVitalHandler(vitalService, validator)
	profileHandler := handlers.NewProfileHandler(profileService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		ReportHandler:   reportHandler,
		VitalHandler:    vitalHandler,
		ProfileHandler:  profileHandler,
		AnalysisHandler: analysisHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		Gatherer:        reg,
	}
	routesConfig.Setup()
	return app, nil
}
