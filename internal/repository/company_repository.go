package repository

import (
	"context"

	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/persistence"
)

// CompanyAccount pairs a company user with its profile for admin views.
type CompanyAccount struct {
	User    domain.User
	Profile domain.CompanyProfile
}

// CompanyRepository manages company profile rows.
type CompanyRepository interface {
	Get(ctx context.Context, userID int64) (*domain.CompanyProfile, error)
	Upsert(ctx context.Context, userID int64, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error)
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]CompanyAccount, error)
}

type companyRepository struct {
	pg *persistence.Postgres
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pg *persistence.Postgres) CompanyRepository {
	return &companyRepository{pg: pg}
}

func (r *companyRepository) Get(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	const query = `
        SELECT user_id, company_name, description, contact_email, phone, created_at, updated_at
        FROM companies WHERE user_id=$1`

	var p domain.CompanyProfile
	if err := r.pg.Pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.CompanyName,
		&p.Description,
		&p.ContactEmail,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *companyRepository) Upsert(ctx context.Context, userID int64, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error) {
	const query = `
        INSERT INTO companies (user_id, company_name, description, contact_email, phone)
        VALUES ($1, COALESCE($2,''), COALESCE($3,''), COALESCE($4,''), COALESCE($5,''))
        ON CONFLICT (user_id) DO UPDATE SET
            company_name  = COALESCE($2, companies.company_name),
            description   = COALESCE($3, companies.description),
            contact_email = COALESCE($4, companies.contact_email),
            phone         = COALESCE($5, companies.phone),
            updated_at    = NOW()
        RETURNING user_id, company_name, description, contact_email, phone, created_at, updated_at`

	var p domain.CompanyProfile
	if err := r.pg.Pool.QueryRow(ctx, query,
		userID,
		update.CompanyName,
		update.Description,
		update.ContactEmail,
		update.Phone,
	).Scan(
		&p.UserID,
		&p.CompanyName,
		&p.Description,
		&p.ContactEmail,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *companyRepository) ListByStatus(ctx context.Context, status domain.UserStatus) ([]CompanyAccount, error) {
	const query = `
        SELECT u.id, u.email, u.password_hash, u.user_type, u.status, u.created_at, u.updated_at,
               c.user_id, c.company_name, c.description, c.contact_email, c.phone, c.created_at, c.updated_at
        FROM users u
        JOIN companies c ON c.user_id = u.id
        WHERE u.user_type='company' AND u.status=$1
        ORDER BY u.created_at`

	rows, err := r.pg.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []CompanyAccount
	for rows.Next() {
		var acc CompanyAccount
		if err := rows.Scan(
			&acc.User.ID,
			&acc.User.Email,
			&acc.User.PasswordHash,
			&acc.User.UserType,
			&acc.User.Status,
			&acc.User.CreatedAt,
			&acc.User.UpdatedAt,
			&acc.Profile.UserID,
			&acc.Profile.CompanyName,
			&acc.Profile.Description,
			&acc.Profile.ContactEmail,
			&acc.Profile.Phone,
			&acc.Profile.CreatedAt,
			&acc.Profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}
