package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/presenters"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/pkg/report"
)

type (
	ReportHandler interface {
		UploadReport(c *fiber.Ctx) error
		GetReports(c *fiber.Ctx) error
		GetReportDetails(c *fiber.Ctx) error
		AnalyzeReport(c *fiber.Ctx) error
		DeleteReport(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
		validator     *validator.Validate
	}
)

func NewReportHandler(reportService report.ReportService, validator *validator.Validate) ReportHandler {
	return &reportHandler{
		reportService: reportService,
		validator:     validator,
	}
}

func (h *reportHandler) UploadReport(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	req := new(domain.UploadReportRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReport, domain.ErrFileRequired)
	}
	req.File = file
	req.ReportDate = c.FormValue("report_date")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReport, err)
	}

	res, err := h.reportService.UploadReport(c.Context(), identity, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFileType):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidFileType, err)
		case errors.Is(err, domain.ErrFileTooLarge):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFileTooLarge, err)
		case errors.Is(err, domain.ErrFileRequired), errors.Is(err, domain.ErrInvalidReportDate):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReport, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadReport, err)
	}

	if res.AnalysisMessage != "" {
		return presenters.SuccessResponse(c, res, fiber.StatusCreated, res.AnalysisMessage)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAnalysisDone)
}

func (h *reportHandler) GetReports(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	reports, count, err := h.reportService.GetReports(c.Context(), identity.UserID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReports, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": reports,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetReports)
}

func (h *reportHandler) GetReportDetails(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	res, err := h.reportService.GetReportByID(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, reportErrorStatus(err), domain.MessageFailedGetReportDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReportDetail)
}

func (h *reportHandler) AnalyzeReport(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	res, err := h.reportService.AnalyzeReport(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrParseUUID) || errors.Is(err, domain.ErrReportNotFound) {
			return presenters.ErrorResponse(c, reportErrorStatus(err), domain.MessageFailedAnalyzeReport, err)
		}
		status, message := domain.AnalysisErrorMessage(err)
		return presenters.ErrorResponse(c, status, message, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzeReport)
}

func (h *reportHandler) DeleteReport(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	if err := h.reportService.DeleteReport(c.Context(), identity.UserID, c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, reportErrorStatus(err), domain.MessageFailedDeleteReport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReport)
}

func reportErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrReportNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
