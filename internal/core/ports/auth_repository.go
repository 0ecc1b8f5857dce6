package ports

import (
	"context"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindActiveByID returns the user only when it exists and its active
	// flag is set; otherwise domain.ErrUserNotFound / domain.ErrUserInactive.
	FindActiveByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
