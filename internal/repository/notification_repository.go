package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// NotificationRepository manages per-user notification rows. The
// history-scoped operations fan out over every row created by one spot
// send, keyed by the spot_history_id foreign key.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	UpdateByHistoryID(ctx context.Context, historyID int64, title, message string, nType domain.NotificationType) (int64, error)
	DeleteByHistoryID(ctx context.Context, historyID int64) (int64, error)
}

type notificationRepository struct {
	pg *persistence.Postgres
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pg *persistence.Postgres) NotificationRepository {
	return &notificationRepository{pg: pg}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (user_id, title, message, type, spot_history_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, is_read, created_at, updated_at`

	return r.pg.Pool.QueryRow(ctx, query,
		n.UserID,
		n.Title,
		n.Message,
		n.Type,
		n.SpotHistoryID,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
}

const selectNotificationColumns = `
    SELECT id, user_id, title, message, type, is_read, spot_history_id, created_at, updated_at
    FROM notifications`

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.pg.Pool.Query(ctx,
		selectNotificationColumns+` WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanNotifications(rows)
}

func (r *notificationRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pg.Pool.Query(ctx,
		selectNotificationColumns+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	defer rows.Close()

	var list []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.IsRead,
			&n.SpotHistoryID,
			&n.CreatedAt,
			&n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead is idempotent: marking an already-read notification succeeds
// without error.
func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.pg.Pool.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE, updated_at=NOW() WHERE user_id=$1 AND NOT is_read`, userID)
	return err
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND NOT is_read`, userID).Scan(&count)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pg.Pool.Exec(ctx, `DELETE FROM notifications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) UpdateByHistoryID(ctx context.Context, historyID int64, title, message string, nType domain.NotificationType) (int64, error) {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE notifications SET title=$1, message=$2, type=$3, updated_at=NOW() WHERE spot_history_id=$4`,
		title, message, nType, historyID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *notificationRepository) DeleteByHistoryID(ctx context.Context, historyID int64) (int64, error) {
	cmd, err := r.pg.Pool.Exec(ctx,
		`DELETE FROM notifications WHERE spot_history_id=$1`, historyID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
