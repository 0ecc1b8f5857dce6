package ports

import (
	"context"
	"time"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// ListCheckupsFilter carries query parameters for listing checkups.
type ListCheckupsFilter struct {
	ProfileID string    // required
	DateFrom  time.Time // optional: checked_at >= DateFrom
	DateTo    time.Time // optional: checked_at <= DateTo
	Page      int       // 1-based
	Limit     int       // capped at 100 by service
}

// MonthlyReport aggregates a calendar month of checkups.
type MonthlyReport struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	CheckupCount     int64   `json:"checkup_count"`
	ProfilesSeen     int64   `json:"profiles_seen"`
	AvgSystolic      float64 `json:"avg_systolic"`
	AvgDiastolic     float64 `json:"avg_diastolic"`
	AvgBloodSugar    float64 `json:"avg_blood_sugar"`
	HypertensiveHits int64   `json:"hypertensive_readings"`
}

// CheckupRepository defines persistence operations for checkups.
type CheckupRepository interface {
	Create(ctx context.Context, c *domain.Checkup) (*domain.Checkup, error)
	FindByID(ctx context.Context, id string) (*domain.Checkup, error)
	List(ctx context.Context, filter ListCheckupsFilter) ([]*domain.Checkup, int64, error)
	// AggregateMonth runs the monthly report aggregation over checkups whose
	// checked_at falls inside the given calendar month.
	AggregateMonth(ctx context.Context, year, month int) (*MonthlyReport, error)
}
