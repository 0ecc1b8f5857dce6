package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ProfileService struct {
	repo   ports.ProfileRepository
	codec  *IdentityCodec
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, codec *IdentityCodec, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, codec: codec, logger: logger}
}

func (s *ProfileService) CreateProfile(ctx context.Context, input ports.CreateProfileInput) (*domain.Profile, error) {
	if input.FullName == "" || input.BirthDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		NIK:       input.NIK,
		FullName:  input.FullName,
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		Address:   input.Address,
		Phone:     input.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create profile")
		return nil, err
	}

	// The printable identifier embeds the persisted id, so it is minted
	// after the insert and written back.
	created.QRCodeID = s.codec.GenerateID(created.ID)
	created.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, created); err != nil {
		s.logger.Error().Err(err).Str("profile_id", created.ID).Msg("failed to store qr code id")
		return nil, err
	}

	s.logger.Info().Str("profile_id", created.ID).Str("qr_code_id", created.QRCodeID).Msg("profile created")
	return created, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.Address != "" {
		profile.Address = input.Address
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *ProfileService) ListProfiles(ctx context.Context, filter ports.ListProfilesFilter) (*ports.ListProfilesResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListProfilesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ProfileQR recomputes the structured payload from the profile's id and name.
func (s *ProfileService) ProfileQR(ctx context.Context, id string) (*ports.ProfileQR, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := s.codec.Encode(profile.ID, profile.FullName)
	if err != nil {
		return nil, err
	}

	return &ports.ProfileQR{
		ProfileID: profile.ID,
		Payload:   payload,
		QRCodeID:  profile.QRCodeID,
	}, nil
}

// ResolveScan classifies a scanned payload and resolves it to a profile.
// Both the structured and the legacy form carry the profile id; anything
// else is ErrInvalidIdentity.
func (s *ProfileService) ResolveScan(ctx context.Context, payload string) (*domain.Profile, *domain.Identity, error) {
	identity := s.codec.Decode(payload)
	if !identity.Valid() {
		return nil, nil, domain.ErrInvalidIdentity
	}

	profile, err := s.repo.FindByID(ctx, identity.ProfileID)
	if err != nil {
		return nil, &identity, err
	}
	return profile, &identity, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
