package ports

import (
	"context"
	"time"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// CreateCheckupInput carries one measurement session for a profile.
type CreateCheckupInput struct {
	ProfileID   string
	CheckedAt   time.Time
	Systolic    int
	Diastolic   int
	WeightKg    float64
	HeightCm    float64
	BloodSugar  *float64
	Cholesterol *float64
	UricAcid    *float64
	Notes       string
	RecordedBy  string
}

// ListCheckupsResult is returned by ListCheckups.
type ListCheckupsResult struct {
	Items      []*domain.Checkup
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CheckupService defines use-case operations for checkups.
type CheckupService interface {
	CreateCheckup(ctx context.Context, input CreateCheckupInput) (*domain.Checkup, error)
	GetCheckup(ctx context.Context, id string) (*domain.Checkup, error)
	ListCheckups(ctx context.Context, filter ListCheckupsFilter) (*ListCheckupsResult, error)
}

// ReportService produces aggregate statistics.
type ReportService interface {
	MonthlyReport(ctx context.Context, year, month int) (*MonthlyReport, error)
}
