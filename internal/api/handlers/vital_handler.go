package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/presenters"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/pkg/vital"
)

type (
	VitalHandler interface {
		AddVital(c *fiber.Ctx) error
		GetVitals(c *fiber.Ctx) error
	}

	vitalHandler struct {
		vitalService vital.VitalService
		validator    *validator.Validate
	}
)

func NewVitalHandler(vitalService vital.VitalService, validator *validator.Validate) VitalHandler {
	return &vitalHandler{
		vitalService: vitalService,
		validator:    validator,
	}
}

func (h *vitalHandler) AddVital(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	req := new(domain.AddVitalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddVital, err)
	}

	res, err := h.vitalService.AddVital(c.Context(), identity.UserID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddVital, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddVital)
}

func (h *vitalHandler) GetVitals(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	res, err := h.vitalService.GetVitals(c.Context(), identity.UserID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetVitals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetVitals)
}
