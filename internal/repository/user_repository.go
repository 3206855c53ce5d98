package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// UserRepository is the single source of truth for account rows.
// Registration and deletion are transactional: the identity row and its
// type-specific profile row commit or roll back together.
type UserRepository interface {
	CreateJobSeeker(ctx context.Context, user *domain.User, profile *domain.JobSeekerProfile) error
	CreateCompany(ctx context.Context, user *domain.User, profile *domain.CompanyProfile) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByType(ctx context.Context, userType domain.UserType) ([]domain.User, error)
	ListIDsByType(ctx context.Context, userType domain.UserType) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	DeleteByEmail(ctx context.Context, email string) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	pg *persistence.Postgres
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pg *persistence.Postgres) UserRepository {
	return &userRepository{pg: pg}
}

const insertUserQuery = `
    INSERT INTO users (email, password_hash, user_type, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at, updated_at`

func (r *userRepository) CreateJobSeeker(ctx context.Context, user *domain.User, profile *domain.JobSeekerProfile) error {
	return r.pg.WithTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUserQuery,
			user.Email,
			user.PasswordHash,
			user.UserType,
			user.Status,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		const query = `
            INSERT INTO job_seekers (user_id, first_name, last_name)
            VALUES ($1, $2, $3)
            RETURNING created_at, updated_at`
		profile.UserID = user.ID
		return tx.QueryRow(ctx, query,
			user.ID,
			profile.FirstName,
			profile.LastName,
		).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	})
}

func (r *userRepository) CreateCompany(ctx context.Context, user *domain.User, profile *domain.CompanyProfile) error {
	return r.pg.WithTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUserQuery,
			user.Email,
			user.PasswordHash,
			user.UserType,
			user.Status,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		const query = `
            INSERT INTO companies (user_id, company_name, description, contact_email)
            VALUES ($1, $2, $3, $4)
            RETURNING created_at, updated_at`
		profile.UserID = user.ID
		return tx.QueryRow(ctx, query,
			user.ID,
			profile.CompanyName,
			profile.Description,
			profile.ContactEmail,
		).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	})
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.pg.Pool.QueryRow(ctx, insertUserQuery,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

const selectUserColumns = `
    SELECT id, email, password_hash, user_type, status, created_at, updated_at
    FROM users`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, selectUserColumns+` WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, selectUserColumns+` WHERE email=$1`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pg.Pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.UserType,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByType(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	rows, err := r.pg.Pool.Query(ctx, selectUserColumns+` WHERE user_type=$1 ORDER BY created_at`, userType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.UserType,
			&user.Status,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) ListIDsByType(ctx context.Context, userType domain.UserType) ([]int64, error) {
	rows, err := r.pg.Pool.Query(ctx, `SELECT id FROM users WHERE user_type=$1 ORDER BY id`, userType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	cmd, err := r.pg.Pool.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteByEmail removes the profile row first, then the user row, inside
// one transaction so a failure midway rolls back both.
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.pg.WithTx(ctx, func(tx pgx.Tx) error {
		var id int64
		var userType domain.UserType
		if err := tx.QueryRow(ctx,
			`SELECT id, user_type FROM users WHERE email=$1`, email).Scan(&id, &userType); err != nil {
			return err
		}

		switch userType {
		case domain.UserTypeJobSeeker:
			if _, err := tx.Exec(ctx, `DELETE FROM job_seekers WHERE user_id=$1`, id); err != nil {
				return err
			}
		case domain.UserTypeCompany:
			if _, err := tx.Exec(ctx, `DELETE FROM companies WHERE user_id=$1`, id); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
		return err
	})
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pg.Pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
