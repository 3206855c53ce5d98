package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/justjoin/justjoin-backend/internal/domain"
)

// TokenManager issues and validates HS256-signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. ttl is the session lifetime
// measured from login time.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the session token payload.
type Claims struct {
	UserID    int64           `json:"user_id"`
	Email     string          `json:"email"`
	Role      domain.UserType `json:"role"`
	LoginTime int64           `json:"login_time"`
	jwt.RegisteredClaims
}

// SessionExpired reports whether the session recorded in the claims is
// older than ttl at the given instant. A session exactly at the boundary
// is still valid.
func (c *Claims) SessionExpired(now time.Time, ttl time.Duration) bool {
	login := time.Unix(c.LoginTime, 0)
	return now.Sub(login) > ttl
}

// GenerateToken builds and signs a session token for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.UserType,
		LoginTime: now.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the signature and returns claims. Expiry is
// checked both by the jwt library (exp) and by SessionExpired in the
// middleware against the recorded login time.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SessionTTL exposes the configured session lifetime.
func (tm *TokenManager) SessionTTL() time.Duration {
	return tm.ttl
}
