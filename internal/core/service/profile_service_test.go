package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

type stubProfileRepo struct {
	profiles    map[string]*domain.Profile
	deactivated []string
	listFilter  ports.ListProfilesFilter
	listTotal   int64
	err         error
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p.ID = "64f1a2"
	r.profiles[p.ID] = p
	return p, nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if r.err != nil {
		return r.err
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *stubProfileRepo) Deactivate(_ context.Context, id string) error {
	r.deactivated = append(r.deactivated, id)
	return nil
}

func (r *stubProfileRepo) List(_ context.Context, filter ports.ListProfilesFilter) ([]*domain.Profile, int64, error) {
	r.listFilter = filter
	items := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		items = append(items, p)
	}
	return items, r.listTotal, nil
}

func newTestProfileService(repo *stubProfileRepo) *ProfileService {
	return NewProfileService(repo, NewIdentityCodec(), zerolog.Nop())
}

func TestProfileService_CreateMintsQRCodeID(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{}}
	svc := newTestProfileService(repo)

	profile, err := svc.CreateProfile(context.Background(), ports.CreateProfileInput{
		FullName:  "Siti Aminah",
		BirthDate: time.Date(1952, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:    "female",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(profile.QRCodeID, "QR64f1a2_") {
		t.Fatalf("qr code id should embed the persisted id, got %q", profile.QRCodeID)
	}
	if !profile.Active {
		t.Fatalf("new profiles should start active")
	}
	if stored := repo.profiles["64f1a2"]; stored.QRCodeID != profile.QRCodeID {
		t.Fatalf("qr code id should be written back to the store")
	}
}

func TestProfileService_CreateRejectsMissingFields(t *testing.T) {
	svc := newTestProfileService(&stubProfileRepo{profiles: map[string]*domain.Profile{}})

	_, err := svc.CreateProfile(context.Background(), ports.CreateProfileInput{FullName: "Siti"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without birth date, got %v", err)
	}
	_, err = svc.CreateProfile(context.Background(), ports.CreateProfileInput{
		BirthDate: time.Date(1952, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
}

func TestProfileService_UpdateKeepsUnsetFields(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{
		"64f1a2": {ID: "64f1a2", FullName: "Siti Aminah", Address: "Jl. Melati 3", Phone: "0812"},
	}}
	svc := newTestProfileService(repo)

	updated, err := svc.UpdateProfile(context.Background(), "64f1a2", ports.UpdateProfileInput{Phone: "0813"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "0813" {
		t.Fatalf("phone should change, got %q", updated.Phone)
	}
	if updated.FullName != "Siti Aminah" || updated.Address != "Jl. Melati 3" {
		t.Fatalf("unset fields must keep their stored values: %+v", updated)
	}
}

func TestProfileService_DeleteIsSoft(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{
		"64f1a2": {ID: "64f1a2", FullName: "Siti Aminah", Active: true},
	}}
	svc := newTestProfileService(repo)

	if err := svc.DeleteProfile(context.Background(), "64f1a2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != "64f1a2" {
		t.Fatalf("expected deactivation, got %v", repo.deactivated)
	}

	if err := svc.DeleteProfile(context.Background(), "unknown"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_ListNormalizesPaging(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{}, listTotal: 41}
	svc := newTestProfileService(repo)

	result, err := svc.ListProfiles(context.Background(), ports.ListProfilesFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listFilter.Page != 1 || repo.listFilter.Limit != 20 {
		t.Fatalf("expected defaults page=1 limit=20, got %+v", repo.listFilter)
	}
	if result.TotalPages != 3 {
		t.Fatalf("41 rows at limit 20 should span 3 pages, got %d", result.TotalPages)
	}

	if _, err := svc.ListProfiles(context.Background(), ports.ListProfilesFilter{Limit: 500}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listFilter.Limit != 100 {
		t.Fatalf("limit should cap at 100, got %d", repo.listFilter.Limit)
	}
}

func TestProfileService_ProfileQRRecomputesPayload(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{
		"64f1a2": {ID: "64f1a2", FullName: "Siti Aminah", QRCodeID: "QR64f1a2_abc_def"},
	}}
	svc := newTestProfileService(repo)

	qr, err := svc.ProfileQR(context.Background(), "64f1a2")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if qr.QRCodeID != "QR64f1a2_abc_def" {
		t.Fatalf("stored qr code id should be returned, got %q", qr.QRCodeID)
	}

	identity := NewIdentityCodec().Decode(qr.Payload)
	if identity.Kind != domain.IdentityStructured || identity.ProfileID != "64f1a2" {
		t.Fatalf("payload should decode back to the profile, got %+v", identity)
	}
}

func TestProfileService_ResolveScan(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[string]*domain.Profile{
		"64f1a2": {ID: "64f1a2", FullName: "Siti Aminah"},
		"42":     {ID: "42", FullName: "Pak Budi"},
	}}
	svc := newTestProfileService(repo)
	ctx := context.Background()

	payload, err := NewIdentityCodec().Encode("64f1a2", "Siti Aminah")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	profile, identity, err := svc.ResolveScan(ctx, payload)
	if err != nil {
		t.Fatalf("resolve structured: %v", err)
	}
	if profile.ID != "64f1a2" || identity.Kind != domain.IdentityStructured {
		t.Fatalf("unexpected resolution: %+v %+v", profile, identity)
	}

	profile, identity, err = svc.ResolveScan(ctx, "QR42")
	if err != nil {
		t.Fatalf("resolve legacy: %v", err)
	}
	if profile.ID != "42" || identity.Kind != domain.IdentityLegacy {
		t.Fatalf("unexpected resolution: %+v %+v", profile, identity)
	}

	if _, _, err := svc.ResolveScan(ctx, "garbage"); !errors.Is(err, domain.ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}

	_, identity, err = svc.ResolveScan(ctx, "QR99")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if identity == nil || identity.Kind != domain.IdentityLegacy {
		t.Fatalf("a decodable payload should still report its kind, got %+v", identity)
	}
}
