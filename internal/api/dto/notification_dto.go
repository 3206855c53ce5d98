package dto

import (
	"github.com/justjoin/justjoin-backend/internal/domain"
)

// SendToUserRequest payload for POST /api/notifications/admin/send-to-user.
type SendToUserRequest struct {
	UserID  int64                   `json:"userId"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    domain.NotificationType `json:"type"`
}

// SendToAllRequest payload for POST /api/notifications/admin/send-to-all.
type SendToAllRequest struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    domain.NotificationType `json:"type"`
}

// SendSpotRequest payload for POST /api/notifications/admin/send-spot.
type SendSpotRequest struct {
	TargetMode domain.SpotTargetMode   `json:"targetMode"`
	UserIDs    []int64                 `json:"userIds"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	Type       domain.NotificationType `json:"type"`
}

// UpdateSpotRequest payload for PUT /api/notifications/admin/spot/:id.
type UpdateSpotRequest struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    domain.NotificationType `json:"type"`
}

// WorkflowRequest payload for POST /api/notifications/admin/workflow.
type WorkflowRequest struct {
	Trigger string                  `json:"trigger"`
	Name    string                  `json:"name"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    domain.NotificationType `json:"type"`
	Enabled *bool                   `json:"enabled"`
}

// NotificationResponse is the wire shape of one notification.
type NotificationResponse struct {
	ID        int64                   `json:"id"`
	UserID    int64                   `json:"userId"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt string                  `json:"createdAt"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// NewNotificationResponses maps a slice.
func NewNotificationResponses(list []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}
