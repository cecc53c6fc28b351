package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/api/presenters"
	"Sehat-Backend/internal/middleware"
	"Sehat-Backend/pkg/profile"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
	}
)

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandler{profileService: profileService}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	res, err := h.profileService.GetProfile(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProfile, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) GetDashboard(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	res, err := h.profileService.GetDashboard(c.Context(), identity.UserID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
