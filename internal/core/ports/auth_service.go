package ports

import (
	"context"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, fullName, role string) (*domain.User, error)
	// Login verifies credentials and issues a session token. clientAddr is
	// the remote address used to build the rate-limit key; the 6th attempt
	// for the same address+user within the window fails with
	// domain.ErrRateLimited regardless of credential correctness.
	Login(ctx context.Context, username, password, clientAddr string) (string, *domain.User, error)
}
