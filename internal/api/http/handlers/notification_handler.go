package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/api/dto"
	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/service"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// NotificationHandler exposes the user-facing and admin notification
// endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

// ListByUser handles GET /api/notifications/user/:userId.
func (h *NotificationHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	list, err := h.notifications.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewNotificationResponses(list)})
}

// UnreadCount handles GET /api/notifications/unread-count/:userId.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"count": count}})
}

// MarkRead handles PUT /api/notifications/mark-read/:notificationId.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := idParam(c, "notificationId")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllRead handles PUT /api/notifications/mark-all-read/:userId.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllRead(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/notifications/:notificationId.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "notificationId")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListAll handles GET /api/notifications/admin/all.
func (h *NotificationHandler) ListAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.notifications.ListAll(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewNotificationResponses(list)})
}

// SendToUser handles POST /api/notifications/admin/send-to-user.
func (h *NotificationHandler) SendToUser(c *fiber.Ctx) error {
	var req dto.SendToUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 || req.Title == "" || req.Message == "" {
		return apperrors.NewValidationError("userId, title, message required", nil)
	}

	n, err := h.notifications.SendToUser(c.Context(), req.UserID, req.Title, req.Message, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewNotificationResponse(*n)})
}

// SendToAll handles POST /api/notifications/admin/send-to-all.
func (h *NotificationHandler) SendToAll(c *fiber.Ctx) error {
	var req dto.SendToAllRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Message == "" {
		return apperrors.NewValidationError("title and message required", nil)
	}

	sent, err := h.notifications.SendToAllJobSeekers(c.Context(), req.Title, req.Message, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"sent": sent}})
}

// SendSpot handles POST /api/notifications/admin/send-spot.
func (h *NotificationHandler) SendSpot(c *fiber.Ctx) error {
	var req dto.SendSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Message == "" {
		return apperrors.NewValidationError("title and message required", nil)
	}
	switch req.TargetMode {
	case domain.SpotTargetAll:
	case domain.SpotTargetSelected, domain.SpotTargetFiltered:
		if len(req.UserIDs) == 0 {
			return apperrors.NewValidationError("userIds required for this target mode", nil)
		}
	default:
		return apperrors.NewValidationError("invalid targetMode", nil)
	}

	history, err := h.notifications.SendSpot(c.Context(), service.SpotSendInput{
		TargetMode: req.TargetMode,
		UserIDs:    req.UserIDs,
		Title:      req.Title,
		Message:    req.Message,
		Type:       req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": history})
}

// SpotHistory handles GET /api/notifications/admin/spot-history.
func (h *NotificationHandler) SpotHistory(c *fiber.Ctx) error {
	list, err := h.notifications.SpotHistoryList(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": list})
}

// UpdateSpot handles PUT /api/notifications/admin/spot/:id. The edit is
// fanned out to every notification the send produced.
func (h *NotificationHandler) UpdateSpot(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.notifications.UpdateSpot(c.Context(), id, req.Title, req.Message, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"updated": updated}})
}

// DeleteSpot handles DELETE /api/notifications/admin/spot/:id.
func (h *NotificationHandler) DeleteSpot(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	removed, err := h.notifications.DeleteSpot(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"removed": removed}})
}

// SaveWorkflow handles POST /api/notifications/admin/workflow.
func (h *NotificationHandler) SaveWorkflow(c *fiber.Ctx) error {
	var req dto.WorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Trigger == "" || req.Title == "" || req.Message == "" {
		return apperrors.NewValidationError("trigger, title, message required", nil)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	rule := &domain.WorkflowNotificationRule{
		Trigger: req.Trigger,
		Name:    req.Name,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Enabled: enabled,
	}
	if err := h.notifications.SaveWorkflow(c.Context(), rule); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rule})
}

// WorkflowHistory handles GET /api/notifications/admin/workflow-history.
func (h *NotificationHandler) WorkflowHistory(c *fiber.Ctx) error {
	rules, err := h.notifications.ListWorkflows(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rules})
}

// ToggleWorkflow handles PUT /api/notifications/admin/workflow/:id/enabled.
func (h *NotificationHandler) ToggleWorkflow(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.notifications.SetWorkflowEnabled(c.Context(), id, req.Enabled); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
