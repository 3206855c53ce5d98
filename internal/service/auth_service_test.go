package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justjoin/justjoin-backend/internal/auth"
	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/domain"
	"github.com/justjoin/justjoin-backend/internal/events"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			SessionTTLHours:   8,
			BcryptCost:        4,
			GeneratedPassword: 12,
		},
		Admin: config.AdminConfig{SuperEmail: "admin@justjoin.jp"},
	}
}

type authFixture struct {
	service    *AuthService
	users      *fakeUserRepo
	mailer     *fakeMailer
	dispatcher events.Dispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:    users,
		CompanyRepo: users.companies,
		Mailer:      mailer,
		Dispatcher:  dispatcher,
		Logger:      testLogger(),
	})
	return &authFixture{service: svc, users: users, mailer: mailer, dispatcher: dispatcher}
}

func TestRegisterJobSeeker(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, password, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	assert.Len(t, password, 12)
	assert.Equal(t, domain.UserTypeJobSeeker, user.UserType)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	require.True(t, user.HasPassword())
	assert.NotEqual(t, password, *user.PasswordHash, "plaintext must never be persisted")
	assert.NoError(t, auth.ComparePassword(*user.PasswordHash, password))

	profile, err := f.users.jobSeekers.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "太郎", profile.FirstName)
	assert.Equal(t, "山田", profile.LastName)

	messages := f.mailer.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"taro@example.com"}, messages[0].To)
	assert.Contains(t, messages[0].Body, password)
}

func TestRegisterJobSeekerDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	_, _, err = f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.Error(t, err)
	assert.Equal(t, "このメールアドレスはすでに使われています", err.Error())
}

func TestRegisterCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.service.RegisterCompany(ctx, "hr@acme.co.jp", "アクメ株式会社", "製造業")
	require.NoError(t, err)

	assert.Equal(t, domain.UserTypeCompany, user.UserType)
	assert.Equal(t, domain.UserStatusPending, user.Status)
	assert.False(t, user.HasPassword(), "no credentials before approval")

	messages := f.mailer.messages()
	require.Len(t, messages, 2)
	assert.Equal(t, []string{"hr@acme.co.jp"}, messages[0].To)
	assert.Equal(t, []string{"admin@justjoin.jp"}, messages[1].To)
}

func TestRegisterCompanyDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.service.RegisterJobSeeker(ctx, "taken@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	_, err = f.service.RegisterCompany(ctx, "taken@example.com", "アクメ株式会社", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, password, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	user, token, expiresAt, err := f.service.Login(ctx, "taro@example.com", password, domain.UserTypeJobSeeker)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.False(t, expiresAt.IsZero())

	claims, err := f.service.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.UserTypeJobSeeker, claims.Role)
}

func TestLoginExpectedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, password, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)
	_, err = f.service.RegisterCompany(ctx, "hr@acme.co.jp", "アクメ株式会社", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		userType domain.UserType
	}{
		{"unknown email", "nobody@example.com", password, domain.UserTypeJobSeeker},
		{"wrong password", "taro@example.com", "wrong-password", domain.UserTypeJobSeeker},
		{"wrong user type", "taro@example.com", password, domain.UserTypeCompany},
		{"account without password", "hr@acme.co.jp", "anything", domain.UserTypeCompany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := f.service.Login(ctx, tt.email, tt.password, tt.userType)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, "メールアドレスまたはパスワードが正しくありません", err.Error())
		})
	}
}

func TestApproveCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	company, err := f.service.RegisterCompany(ctx, "hr@acme.co.jp", "アクメ株式会社", "")
	require.NoError(t, err)

	require.NoError(t, f.service.ApproveCompany(ctx, company.ID))

	updated, err := f.users.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, updated.Status)
	assert.True(t, updated.HasPassword())

	// the approval mail carries the first password
	messages := f.mailer.messages()
	last := messages[len(messages)-1]
	assert.Equal(t, []string{"hr@acme.co.jp"}, last.To)

	parts := strings.SplitN(last.Body, "パスワード: ", 2)
	require.Len(t, parts, 2)
	issued := strings.Fields(parts[1])[0]
	assert.NoError(t, auth.ComparePassword(*updated.PasswordHash, issued))
}

func TestApproveCompanyOnlyWhenPending(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	company, err := f.service.RegisterCompany(ctx, "hr@acme.co.jp", "アクメ株式会社", "")
	require.NoError(t, err)
	require.NoError(t, f.service.ApproveCompany(ctx, company.ID))

	err = f.service.ApproveCompany(ctx, company.ID)
	assert.ErrorIs(t, err, ErrNotPendingCompany)
}

func TestRejectCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	company, err := f.service.RegisterCompany(ctx, "hr@acme.co.jp", "アクメ株式会社", "")
	require.NoError(t, err)

	require.NoError(t, f.service.RejectCompany(ctx, company.ID, "書類不備"))

	updated, err := f.users.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusRejected, updated.Status)
	assert.False(t, updated.HasPassword())

	err = f.service.RejectCompany(ctx, company.ID, "again")
	assert.ErrorIs(t, err, ErrNotPendingCompany)
}

func TestApproveCompanyRejectsNonCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	seeker, _, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.ApproveCompany(ctx, seeker.ID), ErrUserNotFound)
	assert.ErrorIs(t, f.service.ApproveCompany(ctx, 9999), ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, password, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, user.ID, "wrong-current", "newPassword1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.service.ChangePassword(ctx, user.ID, password, "newPassword1"))

	_, _, _, err = f.service.Login(ctx, "taro@example.com", password, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = f.service.Login(ctx, "taro@example.com", "newPassword1", "")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, oldPassword, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	require.NoError(t, f.service.ResetPassword(ctx, "taro@example.com", domain.UserTypeJobSeeker))

	_, _, _, err = f.service.Login(ctx, "taro@example.com", oldPassword, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.ErrorIs(t, f.service.ResetPassword(ctx, "nobody@example.com", ""), ErrUserNotFound)
	assert.ErrorIs(t, f.service.ResetPassword(ctx, "taro@example.com", domain.UserTypeCompany), ErrUserNotFound)
}

func TestDeleteUserByEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, _, err := f.service.RegisterJobSeeker(ctx, "taro@example.com", "太郎", "山田", "ja")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteUserByEmail(ctx, "taro@example.com"))
	_, err = f.users.GetByID(ctx, user.ID)
	assert.Error(t, err)
	_, err = f.users.jobSeekers.Get(ctx, user.ID)
	assert.Error(t, err, "profile row goes with the account")

	assert.ErrorIs(t, f.service.DeleteUserByEmail(ctx, "admin@justjoin.jp"), ErrSuperAdminDelete)
	assert.ErrorIs(t, f.service.DeleteUserByEmail(ctx, "nobody@example.com"), ErrUserNotFound)
}

func TestPendingCompanies(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.service.RegisterCompany(ctx, "a@acme.co.jp", "A社", "")
	require.NoError(t, err)
	second, err := f.service.RegisterCompany(ctx, "b@acme.co.jp", "B社", "")
	require.NoError(t, err)
	require.NoError(t, f.service.ApproveCompany(ctx, first.ID))

	pending, err := f.service.PendingCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].User.ID)
	assert.Equal(t, "B社", pending[0].Profile.CompanyName)
}
