package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

type CheckupService struct {
	repo     ports.CheckupRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewCheckupService(repo ports.CheckupRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *CheckupService {
	return &CheckupService{repo: repo, profiles: profiles, logger: logger}
}

func (s *CheckupService) CreateCheckup(ctx context.Context, input ports.CreateCheckupInput) (*domain.Checkup, error) {
	if input.ProfileID == "" || input.RecordedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Systolic <= 0 || input.Diastolic <= 0 || input.Systolic <= input.Diastolic {
		return nil, domain.ErrInvalidInput
	}
	if input.WeightKg <= 0 || input.HeightCm <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// The profile must exist and be enrolled.
	if _, err := s.profiles.FindByID(ctx, input.ProfileID); err != nil {
		return nil, err
	}

	checkedAt := input.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}

	checkup := &domain.Checkup{
		ProfileID:   input.ProfileID,
		CheckedAt:   checkedAt,
		Systolic:    input.Systolic,
		Diastolic:   input.Diastolic,
		WeightKg:    input.WeightKg,
		HeightCm:    input.HeightCm,
		BloodSugar:  input.BloodSugar,
		Cholesterol: input.Cholesterol,
		UricAcid:    input.UricAcid,
		Notes:       input.Notes,
		RecordedBy:  input.RecordedBy,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, checkup)
	if err != nil {
		s.logger.Error().Err(err).Str("profile_id", input.ProfileID).Msg("failed to create checkup")
		return nil, err
	}

	s.logger.Info().
		Str("checkup_id", created.ID).
		Str("profile_id", created.ProfileID).
		Str("recorded_by", created.RecordedBy).
		Msg("checkup recorded")
	return created, nil
}

func (s *CheckupService) GetCheckup(ctx context.Context, id string) (*domain.Checkup, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CheckupService) ListCheckups(ctx context.Context, filter ports.ListCheckupsFilter) (*ports.ListCheckupsResult, error) {
	if filter.ProfileID == "" {
		return nil, domain.ErrInvalidInput
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListCheckupsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ReportService aggregates checkup statistics for a calendar month.
type ReportService struct {
	repo   ports.CheckupRepository
	logger zerolog.Logger
}

func NewReportService(repo ports.CheckupRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

func (s *ReportService) MonthlyReport(ctx context.Context, year, month int) (*ports.MonthlyReport, error) {
	if year < 2000 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	report, err := s.repo.AggregateMonth(ctx, year, month)
	if err != nil {
		s.logger.Error().Err(err).Int("year", year).Int("month", month).Msg("monthly aggregation failed")
		return nil, err
	}
	return report, nil
}
