package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// RBAC enforces role-based access control against the principal set by Auth.
// A valid principal with an insufficient role is a 403, distinct from the
// 401s the auth gate produces.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[principal.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
