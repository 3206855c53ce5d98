package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/domain"
	apperrors "github.com/justjoin/justjoin-backend/pkg/util"
)

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.UserTypeAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireSelfOrAdmin ensures the caller either is an admin or owns the
// user id named by the given route parameter.
func RequireSelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role == domain.UserTypeAdmin {
			return c.Next()
		}
		userID, err := strconv.ParseInt(c.Params(param), 10, 64)
		if err != nil || userID != principal.ID {
			return apperrors.NewForbidden("not allowed for this user")
		}
		return c.Next()
	}
}
