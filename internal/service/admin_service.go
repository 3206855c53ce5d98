package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/auth"
	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/mail"
	"github.com/justjoin/justjoin-backend/internal/repository"
)

// AdminService manages the admin account lifecycle. The configured
// super-admin email is the only address accepted for bootstrap (creation
// without an authenticated admin caller) and can never be deleted.
type AdminService struct {
	users      repository.UserRepository
	mailer     mail.Mailer
	logger     *zap.Logger
	bcryptCost int
	passwordLn int
	superEmail string
}

// NewAdminService builds the service.
func NewAdminService(cfg config.Config, users repository.UserRepository, mailer mail.Mailer, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      users,
		mailer:     mailer,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		passwordLn: cfg.Auth.GeneratedPassword,
		superEmail: cfg.Admin.SuperEmail,
	}
}

// CreateAdmin creates an admin account. When the caller is not an
// authenticated admin, only the configured super-admin email is accepted.
// An empty password selects a generated one; the plaintext is returned
// once either way.
func (s *AdminService) CreateAdmin(ctx context.Context, callerIsAdmin bool, email, password string) (*domain.User, string, error) {
	if !callerIsAdmin && email != s.superEmail {
		return nil, "", ErrSuperAdminEmail
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	if password == "" {
		generated, err := auth.GeneratePassword(s.passwordLn)
		if err != nil {
			return nil, "", err
		}
		password = generated
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: &hash,
		UserType:     domain.UserTypeAdmin,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	return user, password, nil
}

// GetAdmins lists all admin accounts.
func (s *AdminService) GetAdmins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByType(ctx, domain.UserTypeAdmin)
}

// DeleteAdmin removes an admin account, refusing the super admin.
func (s *AdminService) DeleteAdmin(ctx context.Context, id int64) error {
	user, err := s.adminByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Email == s.superEmail {
		return ErrSuperAdminDelete
	}
	return s.users.Delete(ctx, id)
}

// ResetAdminPassword issues and emails a fresh password for an admin.
func (s *AdminService) ResetAdminPassword(ctx context.Context, id int64) error {
	user, err := s.adminByID(ctx, id)
	if err != nil {
		return err
	}

	password, err := auth.GeneratePassword(s.passwordLn)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, mail.PasswordReset(user.Email, password)); err != nil {
		s.logger.Warn("email send failed", zap.String("mail", "admin password reset"), zap.Error(err))
	}
	return nil
}

func (s *AdminService) adminByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.UserType != domain.UserTypeAdmin {
		return nil, ErrNotAdminAccount
	}
	return user, nil
}
