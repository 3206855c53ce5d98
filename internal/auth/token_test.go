package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justjoin/justjoin-backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Email:    "seeker@example.com",
		UserType: domain.UserTypeJobSeeker,
		Status:   domain.UserStatusActive,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 8*time.Hour)

	token, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "seeker@example.com", claims.Email)
	assert.Equal(t, domain.UserTypeJobSeeker, claims.Role)
	assert.NotZero(t, claims.LoginTime)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 8*time.Hour)
	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	other := NewTokenManager("different-secret", 8*time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 8*time.Hour)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	login := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	claims := &Claims{LoginTime: login.Unix()}
	ttl := 8 * time.Hour

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"just logged in", login.Add(time.Second), false},
		{"seven hours fifty-nine minutes", login.Add(7*time.Hour + 59*time.Minute), false},
		{"exactly at ttl", login.Add(8 * time.Hour), false},
		{"one second past ttl", login.Add(8*time.Hour + time.Second), true},
		{"next day", login.Add(26 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, claims.SessionExpired(tt.now, ttl))
		})
	}
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 8*time.Hour, tm.SessionTTL())
}
