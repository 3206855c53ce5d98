package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/domain"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller attached to the request.
type Principal struct {
	ID        int64
	Email     string
	Role      domain.UserType
	LoginTime time.Time
}

// Middleware validates bearer tokens and attaches the principal.
type Middleware struct {
	tokens *TokenManager
	now    func() time.Time
}

// NewMiddleware constructs middleware. now is overridable in tests.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens, now: time.Now}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.SessionExpired(m.now(), m.tokens.SessionTTL()) {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, &Principal{
		ID:        claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		LoginTime: time.Unix(claims.LoginTime, 0),
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
