package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/api/dto"
	"github.com/justjoin/justjoin-backend/internal/observability"
	"github.com/justjoin/justjoin-backend/internal/service"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// AdminHandler exposes company review, admin lifecycle and account
// deletion endpoints. All routes except Bootstrap are admin-gated in the
// router.
type AdminHandler struct {
	auth    *service.AuthService
	admins  *service.AdminService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{auth: authService, admins: adminService, metrics: metrics}
}

// PendingCompanies handles GET /api/admin/companies/pending.
func (h *AdminHandler) PendingCompanies(c *fiber.Ctx) error {
	accounts, err := h.auth.PendingCompanies(c.Context())
	if err != nil {
		return err
	}

	data := make([]fiber.Map, 0, len(accounts))
	for _, acc := range accounts {
		data = append(data, fiber.Map{
			"user":    dto.NewUserResponse(&acc.User),
			"profile": acc.Profile,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// ApproveCompany handles POST /api/admin/companies/:id/approve.
func (h *AdminHandler) ApproveCompany(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.auth.ApproveCompany(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "企業アカウントを承認しました。"})
}

// RejectCompany handles POST /api/admin/companies/:id/reject.
func (h *AdminHandler) RejectCompany(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RejectCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.RejectCompany(c.Context(), id, req.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "企業アカウントを却下しました。"})
}

// Bootstrap handles POST /api/admin/bootstrap. Unauthenticated; only the
// configured super-admin email is accepted.
func (h *AdminHandler) Bootstrap(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	user, password, err := h.admins.CreateAdmin(c.Context(), false, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"user":     dto.NewUserResponse(user),
		"password": password,
	})
}

// CreateAdmin handles POST /api/admin/admins (admin-gated).
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	user, password, err := h.admins.CreateAdmin(c.Context(), true, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"user":     dto.NewUserResponse(user),
		"password": password,
	})
}

// ListAdmins handles GET /api/admin/admins.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.admins.GetAdmins(c.Context())
	if err != nil {
		return err
	}

	data := make([]dto.UserResponse, 0, len(admins))
	for i := range admins {
		data = append(data, dto.NewUserResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// DeleteAdmin handles DELETE /api/admin/admins/:id.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.admins.DeleteAdmin(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ResetAdminPassword handles POST /api/admin/admins/:id/reset-password.
func (h *AdminHandler) ResetAdminPassword(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.admins.ResetAdminPassword(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "新しいパスワードをメールでお送りしました。"})
}

// DeleteUser handles DELETE /api/admin/users/:email.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.auth.DeleteUserByEmail(c.Context(), email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// AnalyticsSummary handles GET /api/analytics/admin/summary: request
// counters from the in-memory metrics.
func (h *AdminHandler) AnalyticsSummary(c *fiber.Ctx) error {
	requests, errorsByCode := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"requests": requests,
			"errors":   errorsByCode,
		},
	})
}
