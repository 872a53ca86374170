package middleware

import (
	"net/http"

	"rentflow/internal/common"
	"rentflow/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route group to callers holding one of the given
// roles. Roles are fixed at signup, so there is no per-request lookup.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			role, ok := common.GetRoleFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			for _, allowed := range roles {
				if models.Role(role) == allowed {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}
