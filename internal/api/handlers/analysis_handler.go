package handlers

import (
	"github.com/gofiber/fiber/v2"

	"Sehat-Backend/domain"
	"Sehat-Backend/pkg/analysis"
)

// The analyze-report function keeps its own wire format ({error} bodies,
// permissive CORS) instead of the presenter envelope.
var functionCORSHeaders = map[string]string{
	fiber.HeaderAccessControlAllowOrigin:  "*",
	fiber.HeaderAccessControlAllowHeaders: "authorization, x-client-info, apikey, content-type",
}

type (
	AnalysisHandler interface {
		CORS(c *fiber.Ctx) error
		Preflight(c *fiber.Ctx) error
		AnalyzeReport(c *fiber.Ctx) error
	}

	analysisHandler struct {
		analysisService analysis.AnalysisService
	}
)

func NewAnalysisHandler(analysisService analysis.AnalysisService) AnalysisHandler {
	return &analysisHandler{analysisService: analysisService}
}

func setFunctionCORS(c *fiber.Ctx) {
	for k, v := range functionCORSHeaders {
		c.Set(k, v)
	}
}

// CORS stamps the function headers on every response of the route,
// including auth rejections.
func (h *analysisHandler) CORS(c *fiber.Ctx) error {
	setFunctionCORS(c)
	return c.Next()
}

func (h *analysisHandler) Preflight(c *fiber.Ctx) error {
	setFunctionCORS(c)
	return c.SendStatus(fiber.StatusOK)
}

func (h *analysisHandler) AnalyzeReport(c *fiber.Ctx) error {
	setFunctionCORS(c)

	req := new(domain.AnalyzeReportRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.AnalyzeReportError{Error: domain.MessageFailedBodyRequest})
	}

	pair, err := h.analysisService.AnalyzeReport(c.Context(), req.FileURL, req.FileName)
	if err != nil {
		status, message := domain.AnalysisErrorMessage(err)
		return c.Status(status).JSON(domain.AnalyzeReportError{Error: message})
	}

	return c.Status(fiber.StatusOK).JSON(domain.AnalyzeReportResponse{
		SummaryEnglish: pair.English,
		SummaryUrdu:    pair.RomanUrdu,
	})
}
