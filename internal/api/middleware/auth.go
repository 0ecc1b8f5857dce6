package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/posyandu/lansia-health/internal/api/metrics"
	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
	"github.com/posyandu/lansia-health/internal/core/service"
)

// PrincipalKey is the echo context key the Auth middleware stores the
// authenticated principal under.
const PrincipalKey = "principal"

// Auth turns an inbound bearer token into an authenticated principal on the
// request context. The token is verified before any claim is trusted, then
// the subject is resolved against the user store: a deleted or deactivated
// account invalidates outstanding tokens immediately. The middleware itself
// never refreshes or rotates the token.
func Auth(tokens *service.TokenService, repo ports.AuthRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := repo.FindActiveByID(c.Request().Context(), claims.UserID)
			if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserInactive) {
				metrics.AuthRejectionsTotal.WithLabelValues("user_inactive").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
			}
			if err != nil {
				// Store failure, not an auth verdict.
				return err
			}

			c.Set(PrincipalKey, domain.Principal{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			})

			return next(c)
		}
	}
}
