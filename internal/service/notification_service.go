package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/events"
	"github.com/justjoin/justjoin-backend/internal/persistence"
	"github.com/justjoin/justjoin-backend/internal/repository"
)

// SpotSendInput describes one broadcast send. UserIDs is consulted for
// the selected and filtered target modes; mode all resolves to every
// job seeker at send time.
type SpotSendInput struct {
	TargetMode domain.SpotTargetMode
	UserIDs    []int64
	Title      string
	Message    string
	Type       domain.NotificationType
}

// NotificationService owns notification CRUD, the broadcast flows and
// the workflow rules fired from domain events.
type NotificationService struct {
	notifications repository.NotificationRepository
	spotHistory   repository.SpotHistoryRepository
	workflows     repository.WorkflowRepository
	users         repository.UserRepository
	cache         *persistence.Cache
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	SpotHistoryRepo  repository.SpotHistoryRepository
	WorkflowRepo     repository.WorkflowRepository
	UserRepo         repository.UserRepository
	Cache            *persistence.Cache
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		spotHistory:   deps.SpotHistoryRepo,
		workflows:     deps.WorkflowRepo,
		users:         deps.UserRepo,
		cache:         deps.Cache,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
	}
}

func unreadCacheKey(userID int64) string {
	return fmt.Sprintf("unread:%d", userID)
}

// Create inserts a single notification row and returns it.
func (s *NotificationService) Create(ctx context.Context, userID int64, title, message string, nType domain.NotificationType) (*domain.Notification, error) {
	if nType == "" {
		nType = domain.NotificationInfo
	}
	n := &domain.Notification{UserID: userID, Title: title, Message: message, Type: nType}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, unreadCacheKey(userID))
	return n, nil
}

// SendToUser delivers one notification to one user.
func (s *NotificationService) SendToUser(ctx context.Context, userID int64, title, message string, nType domain.NotificationType) (*domain.Notification, error) {
	return s.Create(ctx, userID, title, message, nType)
}

// SendToAllJobSeekers inserts one notification per job seeker, one row
// at a time. Cost is linear in user count; accepted at current scale.
func (s *NotificationService) SendToAllJobSeekers(ctx context.Context, title, message string, nType domain.NotificationType) (int, error) {
	ids, err := s.users.ListIDsByType(ctx, domain.UserTypeJobSeeker)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range ids {
		if _, err := s.Create(ctx, id, title, message, nType); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// ListAll returns a page of all notifications for the admin view.
func (s *NotificationService) ListAll(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	return s.notifications.ListAll(ctx, limit, offset)
}

// MarkRead flips a notification to read. Idempotent: re-marking an
// already-read row succeeds. The unread-count cache is advisory and
// catches up within its TTL.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotificationMissing
		}
		return err
	}
	return nil
}

// MarkAllRead flips every unread notification of one user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.cache.Delete(ctx, unreadCacheKey(userID))
	return nil
}

// UnreadCount counts unread notifications, behind the advisory cache.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var cached int
	if s.cache.GetJSON(ctx, unreadCacheKey(userID), &cached) {
		return cached, nil
	}

	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.cache.SetJSON(ctx, unreadCacheKey(userID), count)
	return count, nil
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotificationMissing
		}
		return err
	}
	return nil
}

// SendSpot performs one broadcast: the audit row is written first, then
// one notification per recipient referencing it.
func (s *NotificationService) SendSpot(ctx context.Context, input SpotSendInput) (*domain.SpotNotificationHistory, error) {
	if input.Type == "" {
		input.Type = domain.NotificationInfo
	}

	recipients := input.UserIDs
	if input.TargetMode == domain.SpotTargetAll {
		ids, err := s.users.ListIDsByType(ctx, domain.UserTypeJobSeeker)
		if err != nil {
			return nil, err
		}
		recipients = ids
	}

	history := &domain.SpotNotificationHistory{
		TargetMode:     input.TargetMode,
		Title:          input.Title,
		Message:        input.Message,
		Type:           input.Type,
		RecipientCount: len(recipients),
	}
	if err := s.spotHistory.Create(ctx, history); err != nil {
		return nil, err
	}

	for _, userID := range recipients {
		n := &domain.Notification{
			UserID:        userID,
			Title:         input.Title,
			Message:       input.Message,
			Type:          input.Type,
			SpotHistoryID: &history.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Error("spot notification insert failed",
				zap.Int64("history_id", history.ID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			return history, err
		}
		s.cache.Delete(ctx, unreadCacheKey(userID))
	}
	return history, nil
}

// SpotHistoryList returns the audit records, newest first.
func (s *NotificationService) SpotHistoryList(ctx context.Context) ([]domain.SpotNotificationHistory, error) {
	return s.spotHistory.List(ctx)
}

// UpdateSpot edits a history record and fans the edit out to every
// notification row the send produced.
func (s *NotificationService) UpdateSpot(ctx context.Context, historyID int64, title, message string, nType domain.NotificationType) (int64, error) {
	if err := s.spotHistory.Update(ctx, historyID, title, message, nType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrSpotHistoryMissing
		}
		return 0, err
	}
	return s.notifications.UpdateByHistoryID(ctx, historyID, title, message, nType)
}

// DeleteSpot removes a history record together with exactly the
// notification rows it produced.
func (s *NotificationService) DeleteSpot(ctx context.Context, historyID int64) (int64, error) {
	removed, err := s.notifications.DeleteByHistoryID(ctx, historyID)
	if err != nil {
		return 0, err
	}
	if err := s.spotHistory.Delete(ctx, historyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return removed, ErrSpotHistoryMissing
		}
		return removed, err
	}
	return removed, nil
}

// SaveWorkflow upserts a workflow rule on its trigger key.
func (s *NotificationService) SaveWorkflow(ctx context.Context, rule *domain.WorkflowNotificationRule) error {
	if rule.Type == "" {
		rule.Type = domain.NotificationInfo
	}
	return s.workflows.Upsert(ctx, rule)
}

// ListWorkflows returns all workflow rules.
func (s *NotificationService) ListWorkflows(ctx context.Context) ([]domain.WorkflowNotificationRule, error) {
	return s.workflows.List(ctx)
}

// SetWorkflowEnabled toggles a rule.
func (s *NotificationService) SetWorkflowEnabled(ctx context.Context, id int64, enabled bool) error {
	if err := s.workflows.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWorkflowMissing
		}
		return err
	}
	return nil
}

// RegisterHandlers subscribes the workflow triggers to domain events.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventJobSeekerRegistered,
		events.EventCompanyApproved,
		events.EventProfileCompleted,
	} {
		s.dispatcher.Subscribe(eventType, s.handleTrigger)
	}
}

// handleTrigger fires the workflow rule matching the event, if one is
// saved and enabled.
func (s *NotificationService) handleTrigger(ctx context.Context, event events.Event) error {
	rule, err := s.workflows.GetByTrigger(ctx, string(event.Type))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		s.logger.Error("workflow lookup failed", zap.String("trigger", string(event.Type)), zap.Error(err))
		return err
	}
	if !rule.Enabled {
		return nil
	}

	if _, err := s.Create(ctx, event.UserID, rule.Title, rule.Message, rule.Type); err != nil {
		s.logger.Error("workflow notification failed",
			zap.String("trigger", rule.Trigger),
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
		return err
	}
	return s.workflows.IncrementSent(ctx, rule.ID, 1)
}
