package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Schema statements are idempotent and executed in order at startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id BIGSERIAL PRIMARY KEY,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT,
        user_type TEXT NOT NULL CHECK (user_type IN ('job_seeker','company','admin')),
        status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('pending','active','rejected')),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS job_seekers (
        user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
        first_name TEXT NOT NULL DEFAULT '',
        last_name TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        desired_job_title TEXT NOT NULL DEFAULT '',
        experience_years INT NOT NULL DEFAULT 0,
        skills TEXT[] NOT NULL DEFAULT '{}',
        self_introduction TEXT NOT NULL DEFAULT '',
        interview_enabled BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS companies (
        user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
        company_name TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        contact_email TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS spot_notification_history (
        id BIGSERIAL PRIMARY KEY,
        target_mode TEXT NOT NULL CHECK (target_mode IN ('all','selected','filtered')),
        title TEXT NOT NULL,
        message TEXT NOT NULL,
        type TEXT NOT NULL DEFAULT 'info',
        recipient_count INT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS notifications (
        id BIGSERIAL PRIMARY KEY,
        user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        title TEXT NOT NULL,
        message TEXT NOT NULL,
        type TEXT NOT NULL DEFAULT 'info' CHECK (type IN ('info','success','warning','error')),
        is_read BOOLEAN NOT NULL DEFAULT FALSE,
        spot_history_id BIGINT REFERENCES spot_notification_history(id) ON DELETE CASCADE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
        ON notifications (user_id) WHERE NOT is_read`,
	`CREATE TABLE IF NOT EXISTS workflow_notification_history (
        id BIGSERIAL PRIMARY KEY,
        trigger_key TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        title TEXT NOT NULL,
        message TEXT NOT NULL,
        type TEXT NOT NULL DEFAULT 'info',
        enabled BOOLEAN NOT NULL DEFAULT TRUE,
        sent_count INT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

// RunMigrations creates the schema idempotently at startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Info("schema ensured", zap.Int("statements", len(schema)))
	return nil
}
