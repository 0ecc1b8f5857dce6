package ports

import (
	"context"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// ListProfilesFilter carries all query parameters for listing profiles.
type ListProfilesFilter struct {
	Search string // optional: partial match on full_name or nik
	Active *bool  // optional: filter by active flag
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// ProfileRepository defines persistence operations for elder profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	// Deactivate soft-deletes by clearing the active flag.
	Deactivate(ctx context.Context, id string) error
	// List returns a page of profiles matching filter and the total count.
	List(ctx context.Context, filter ListProfilesFilter) ([]*domain.Profile, int64, error)
}
