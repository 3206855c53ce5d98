package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/api/dto"
	"github.com/justjoin/justjoin-backend/internal/auth"
	"github.com/justjoin/justjoin-backend/internal/service"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// AuthHandler exposes registration, login and password endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// RegisterJobSeeker handles POST /api/register-jobseeker.
func (h *AuthHandler) RegisterJobSeeker(c *fiber.Ctx) error {
	var req dto.RegisterJobSeekerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return apperrors.NewValidationError("email, firstName, lastName required", nil)
	}

	user, _, err := h.auth.RegisterJobSeeker(c.Context(), req.Email, req.FirstName, req.LastName, req.Language)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "登録が完了しました。パスワードをメールでお送りしました。",
		"user":    dto.NewUserResponse(user),
	})
}

// RegisterCompany handles POST /api/register-company.
func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var req dto.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.CompanyName == "" {
		return apperrors.NewValidationError("email and companyName required", nil)
	}

	user, err := h.auth.RegisterCompany(c.Context(), req.Email, req.CompanyName, req.Description)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "企業登録を受け付けました。審査完了後にご連絡します。",
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"user":      dto.NewUserResponse(user),
		"token":     token,
		"expiresAt": exp,
	})
}

// ChangePassword handles POST /api/password/change (authenticated).
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("currentPassword and newPassword required", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "パスワードを変更しました。"})
}

// ResetPassword handles POST /api/password/reset. A fresh password is
// generated and emailed; nothing sensitive is returned.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.auth.ResetPassword(c.Context(), req.Email, req.UserType); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "新しいパスワードをメールでお送りしました。"})
}
