package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/api/dto"
	"github.com/justjoin/justjoin-backend/internal/service"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// ProfileHandler exposes profile read/update endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func userIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}

// Get handles GET /api/profile/:userId.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": profile})
}

// Update handles PUT /api/profile/:userId.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.UpdateProfile(c.Context(), userID, service.ProfileUpdateInput{
		JobSeeker: req.JobSeekerUpdate(),
		Company:   req.CompanyUpdate(),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": profile})
}
