package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/auth"
	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/events"
	"github.com/justjoin/justjoin-backend/internal/mail"
	"github.com/justjoin/justjoin-backend/internal/repository"
)

// AuthService is the single source of truth for account lifecycle and
// credential verification. Every outbound email here is best-effort: a
// failed send is logged and never rolls back the primary operation.
type AuthService struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	tokenMgr   *auth.TokenManager
	mailer     mail.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger

	bcryptCost int
	passwordLn int
	superEmail string
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	CompanyRepo repository.CompanyRepository
	Mailer      mail.Mailer
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		companies:  deps.CompanyRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		passwordLn: cfg.Auth.GeneratedPassword,
		superEmail: cfg.Admin.SuperEmail,
	}
}

// RegisterJobSeeker creates an active job seeker account with a generated
// password and a skeleton profile, committed together. The plaintext
// password is returned exactly once so the caller can surface it; only
// the hash is persisted.
//
// The duplicate check is read-then-insert: two concurrent registrations
// with the same email race to the users.email unique constraint, in which
// case the loser gets a constraint error rather than ErrEmailTaken.
func (s *AuthService) RegisterJobSeeker(ctx context.Context, email, firstName, lastName, language string) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	password, err := auth.GeneratePassword(s.passwordLn)
	if err != nil {
		return nil, "", err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: &hash,
		UserType:     domain.UserTypeJobSeeker,
		Status:       domain.UserStatusActive,
	}
	profile := &domain.JobSeekerProfile{FirstName: firstName, LastName: lastName}
	if err := s.users.CreateJobSeeker(ctx, user, profile); err != nil {
		return nil, "", err
	}

	s.sendMail(ctx, mail.WelcomeJobSeeker(email, firstName+" "+lastName, password, language), "jobseeker welcome")
	s.publish(ctx, events.EventJobSeekerRegistered, user)

	return user, password, nil
}

// RegisterCompany creates a pending company account with no password;
// credentials are only issued on admin approval. Two informational mails
// go out, to the company and to the admin.
func (s *AuthService) RegisterCompany(ctx context.Context, email, companyName, description string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user := &domain.User{
		Email:    email,
		UserType: domain.UserTypeCompany,
		Status:   domain.UserStatusPending,
	}
	profile := &domain.CompanyProfile{CompanyName: companyName, Description: description, ContactEmail: email}
	if err := s.users.CreateCompany(ctx, user, profile); err != nil {
		return nil, err
	}

	s.sendMail(ctx, mail.CompanyRegistered(email, companyName), "company registered")
	s.sendMail(ctx, mail.CompanyPendingReview(s.superEmail, companyName, email), "company review notice")
	s.publish(ctx, events.EventCompanyRegistered, user)

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email,
// missing password hash and wrong password are expected failures and all
// surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, userType domain.UserType) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if userType != "" && user.UserType != userType {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.HasPassword() {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ApproveCompany transitions a pending company to active, issuing its
// first password. The transition only applies to pending accounts;
// re-approving an already-active company is rejected instead of
// re-issuing credentials.
func (s *AuthService) ApproveCompany(ctx context.Context, userID int64) error {
	user, err := s.pendingCompany(ctx, userID)
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

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.users.UpdateStatus(ctx, userID, domain.UserStatusActive); err != nil {
		return err
	}

	s.sendMail(ctx, mail.CompanyApproved(user.Email, password), "company approved")
	s.publish(ctx, events.EventCompanyApproved, user)
	return nil
}

// RejectCompany transitions a pending company to rejected.
func (s *AuthService) RejectCompany(ctx context.Context, userID int64, reason string) error {
	user, err := s.pendingCompany(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.UpdateStatus(ctx, userID, domain.UserStatusRejected); err != nil {
		return err
	}

	s.sendMail(ctx, mail.CompanyRejected(user.Email, reason), "company rejected")
	s.publishWithPayload(ctx, events.EventCompanyRejected, user, events.CompanyRejectedPayload{Reason: reason})
	return nil
}

func (s *AuthService) pendingCompany(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.UserType != domain.UserTypeCompany {
		return nil, ErrUserNotFound
	}
	if user.Status != domain.UserStatusPending {
		return nil, ErrNotPendingCompany
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.HasPassword() {
		return ErrInvalidCredentials
	}
	if err := auth.ComparePassword(*user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	s.sendMail(ctx, mail.PasswordChanged(user.Email), "password changed")
	return nil
}

// ResetPassword generates a fresh password for the account and emails it.
// userType guards against resetting an account of the wrong kind from a
// type-specific form.
func (s *AuthService) ResetPassword(ctx context.Context, email string, userType domain.UserType) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if userType != "" && user.UserType != userType {
		return ErrUserNotFound
	}

	password, err := auth.GeneratePassword(s.passwordLn)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	s.sendMail(ctx, mail.PasswordReset(user.Email, password), "password reset")
	return nil
}

// DeleteUserByEmail removes an account and its profile together. The
// configured super-admin account is never deletable.
func (s *AuthService) DeleteUserByEmail(ctx context.Context, email string) error {
	if email == s.superEmail {
		return ErrSuperAdminDelete
	}
	if err := s.users.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// PendingCompanies lists company accounts awaiting review.
func (s *AuthService) PendingCompanies(ctx context.Context) ([]repository.CompanyAccount, error) {
	return s.companies.ListByStatus(ctx, domain.UserStatusPending)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) sendMail(ctx context.Context, msg mail.Message, label string) {
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("email send failed", zap.String("mail", label), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, user *domain.User) {
	s.publishWithPayload(ctx, eventType, user, nil)
}

func (s *AuthService) publishWithPayload(ctx context.Context, eventType events.EventType, user *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
