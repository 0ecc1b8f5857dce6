package ports

import (
	"context"
	"time"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// CreateProfileInput carries all data needed to enrol a new profile.
type CreateProfileInput struct {
	NIK       string
	FullName  string
	BirthDate time.Time
	Gender    string
	Address   string
	Phone     string
}

// UpdateProfileInput carries the mutable profile fields. Empty strings leave
// the stored value unchanged.
type UpdateProfileInput struct {
	FullName string
	Address  string
	Phone    string
}

// ProfileQR is the scannable identity view of a profile: the structured
// payload recomputed from id and name, plus the stored printable identifier.
type ProfileQR struct {
	ProfileID string
	Payload   string
	QRCodeID  string
}

// ListProfilesResult is returned by ListProfiles.
type ListProfilesResult struct {
	Items      []*domain.Profile
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProfileService defines use-case operations for profiles.
type ProfileService interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.Profile, error)
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	ListProfiles(ctx context.Context, filter ListProfilesFilter) (*ListProfilesResult, error)
	// ProfileQR returns the QR payload for printing.
	ProfileQR(ctx context.Context, id string) (*ProfileQR, error)
	// ResolveScan decodes a scanned payload and resolves it to a profile.
	// Invalid payloads fail with domain.ErrInvalidIdentity.
	ResolveScan(ctx context.Context, payload string) (*domain.Profile, *domain.Identity, error)
}
