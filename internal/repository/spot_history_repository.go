package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// SpotHistoryRepository manages the audit records of broadcast sends.
// Deleting a history row cascades to its notifications at the database
// level via the spot_history_id foreign key.
type SpotHistoryRepository interface {
	Create(ctx context.Context, h *domain.SpotNotificationHistory) error
	GetByID(ctx context.Context, id int64) (*domain.SpotNotificationHistory, error)
	List(ctx context.Context) ([]domain.SpotNotificationHistory, error)
	Update(ctx context.Context, id int64, title, message string, nType domain.NotificationType) error
	Delete(ctx context.Context, id int64) error
}

type spotHistoryRepository struct {
	pg *persistence.Postgres
}

// NewSpotHistoryRepository returns a Postgres-backed implementation.
func NewSpotHistoryRepository(pg *persistence.Postgres) SpotHistoryRepository {
	return &spotHistoryRepository{pg: pg}
}

func (r *spotHistoryRepository) Create(ctx context.Context, h *domain.SpotNotificationHistory) error {
	const query = `
        INSERT INTO spot_notification_history (target_mode, title, message, type, recipient_count)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pg.Pool.QueryRow(ctx, query,
		h.TargetMode,
		h.Title,
		h.Message,
		h.Type,
		h.RecipientCount,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *spotHistoryRepository) GetByID(ctx context.Context, id int64) (*domain.SpotNotificationHistory, error) {
	const query = `
        SELECT id, target_mode, title, message, type, recipient_count, created_at
        FROM spot_notification_history WHERE id=$1`

	var h domain.SpotNotificationHistory
	if err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.TargetMode,
		&h.Title,
		&h.Message,
		&h.Type,
		&h.RecipientCount,
		&h.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *spotHistoryRepository) List(ctx context.Context) ([]domain.SpotNotificationHistory, error) {
	const query = `
        SELECT id, target_mode, title, message, type, recipient_count, created_at
        FROM spot_notification_history ORDER BY created_at DESC`

	rows, err := r.pg.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.SpotNotificationHistory
	for rows.Next() {
		var h domain.SpotNotificationHistory
		if err := rows.Scan(
			&h.ID,
			&h.TargetMode,
			&h.Title,
			&h.Message,
			&h.Type,
			&h.RecipientCount,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *spotHistoryRepository) Update(ctx context.Context, id int64, title, message string, nType domain.NotificationType) error {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE spot_notification_history SET title=$1, message=$2, type=$3 WHERE id=$4`,
		title, message, nType, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *spotHistoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pg.Pool.Exec(ctx, `DELETE FROM spot_notification_history WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
