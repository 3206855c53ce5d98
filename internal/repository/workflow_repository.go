package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// WorkflowRepository manages workflow notification rules. A rule is
// keyed by its trigger: saving an edited rule upserts on that key.
type WorkflowRepository interface {
	Upsert(ctx context.Context, rule *domain.WorkflowNotificationRule) error
	GetByTrigger(ctx context.Context, trigger string) (*domain.WorkflowNotificationRule, error)
	List(ctx context.Context) ([]domain.WorkflowNotificationRule, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	IncrementSent(ctx context.Context, id int64, delta int) error
	Delete(ctx context.Context, id int64) error
}

type workflowRepository struct {
	pg *persistence.Postgres
}

// NewWorkflowRepository returns a Postgres-backed implementation.
func NewWorkflowRepository(pg *persistence.Postgres) WorkflowRepository {
	return &workflowRepository{pg: pg}
}

func (r *workflowRepository) Upsert(ctx context.Context, rule *domain.WorkflowNotificationRule) error {
	const query = `
        INSERT INTO workflow_notification_history (trigger_key, name, title, message, type, enabled)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (trigger_key) DO UPDATE SET
            name       = $2,
            title      = $3,
            message    = $4,
            type       = $5,
            enabled    = $6,
            updated_at = NOW()
        RETURNING id, sent_count, created_at, updated_at`

	return r.pg.Pool.QueryRow(ctx, query,
		rule.Trigger,
		rule.Name,
		rule.Title,
		rule.Message,
		rule.Type,
		rule.Enabled,
	).Scan(&rule.ID, &rule.SentCount, &rule.CreatedAt, &rule.UpdatedAt)
}

const selectWorkflowColumns = `
    SELECT id, trigger_key, name, title, message, type, enabled, sent_count, created_at, updated_at
    FROM workflow_notification_history`

func (r *workflowRepository) GetByTrigger(ctx context.Context, trigger string) (*domain.WorkflowNotificationRule, error) {
	var rule domain.WorkflowNotificationRule
	if err := r.pg.Pool.QueryRow(ctx, selectWorkflowColumns+` WHERE trigger_key=$1`, trigger).Scan(
		&rule.ID,
		&rule.Trigger,
		&rule.Name,
		&rule.Title,
		&rule.Message,
		&rule.Type,
		&rule.Enabled,
		&rule.SentCount,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *workflowRepository) List(ctx context.Context) ([]domain.WorkflowNotificationRule, error) {
	rows, err := r.pg.Pool.Query(ctx, selectWorkflowColumns+` ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.WorkflowNotificationRule
	for rows.Next() {
		var rule domain.WorkflowNotificationRule
		if err := rows.Scan(
			&rule.ID,
			&rule.Trigger,
			&rule.Name,
			&rule.Title,
			&rule.Message,
			&rule.Type,
			&rule.Enabled,
			&rule.SentCount,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *workflowRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE workflow_notification_history SET enabled=$1, updated_at=NOW() WHERE id=$2`, enabled, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workflowRepository) IncrementSent(ctx context.Context, id int64, delta int) error {
	_, err := r.pg.Pool.Exec(ctx,
		`UPDATE workflow_notification_history SET sent_count=sent_count+$1, updated_at=NOW() WHERE id=$2`, delta, id)
	return err
}

func (r *workflowRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pg.Pool.Exec(ctx, `DELETE FROM workflow_notification_history WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
