package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/api/middleware"
	"github.com/posyandu/lansia-health/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: presence proves the
// middleware ran on this route.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
