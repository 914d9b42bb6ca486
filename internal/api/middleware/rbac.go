package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth, which
// resolves the role from the store rather than trusting the token payload.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
