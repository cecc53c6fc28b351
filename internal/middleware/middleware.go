package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/presenters"
	"Sehat-Backend/pkg/jwt"
	"Sehat-Backend/pkg/metrics"
)

// FunctionsPrefix routes answer their own CORS preflight.
const FunctionsPrefix = "/functions/"

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		FunctionAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	middleware struct {
		allowedOrigins []string
		metrics        *metrics.Collector
		log            *zap.Logger
	}
)

func NewMiddleware(allowedOrigins []string, collector *metrics.Collector, log *zap.Logger) Middleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &middleware{
		allowedOrigins: allowedOrigins,
		metrics:        collector,
		log:            log,
	}
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, message, err := authenticate(c, jwtService)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
		}

		c.Locals(domain.LocalsIdentity, identity)
		return c.Next()
	}
}

// FunctionAuthMiddleware rejects with the function wire format, {error}.
func (m *middleware) FunctionAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, message, err := authenticate(c, jwtService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(domain.AnalyzeReportError{Error: message})
		}

		c.Locals(domain.LocalsIdentity, identity)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, jwtService jwt.JWTService) (domain.Identity, string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return domain.Identity{}, domain.MessageFailedGetToken, domain.ErrTokenNotFound
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	identity, err := jwtService.GetIdentityByToken(token)
	if err != nil {
		return domain.Identity{}, domain.MessageFailedTokenInvalid, err
	}
	return identity, "", nil
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), FunctionsPrefix)
		},
		AllowOrigins: strings.Join(m.allowedOrigins, ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Client-Info, Apikey",
	})
}

// MetricsMiddleware records request counts and latency by route template, so
// ids in paths do not explode label cardinality.
func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.metrics.InFlightGauge.Inc()
		defer m.metrics.InFlightGauge.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		if path == "" || path == "/" {
			path = "unmatched"
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.metrics.RequestsTotal.WithLabelValues(labels...).Inc()
		m.metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

// Identity returns the caller resolved by AuthMiddleware.
func Identity(c *fiber.Ctx) domain.Identity {
	identity, _ := c.Locals(domain.LocalsIdentity).(domain.Identity)
	return identity
}
