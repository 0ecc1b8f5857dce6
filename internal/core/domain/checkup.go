package domain

import "time"

// Checkup is a single periodic health measurement taken for a profile.
// Optional measurements are pointers so that "not taken" is distinguishable
// from zero.
type Checkup struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ProfileID   string    `json:"profile_id" bson:"profile_id"`
	CheckedAt   time.Time `json:"checked_at" bson:"checked_at"`
	Systolic    int       `json:"systolic" bson:"systolic"`
	Diastolic   int       `json:"diastolic" bson:"diastolic"`
	WeightKg    float64   `json:"weight_kg" bson:"weight_kg"`
	HeightCm    float64   `json:"height_cm" bson:"height_cm"`
	BloodSugar  *float64  `json:"blood_sugar,omitempty" bson:"blood_sugar,omitempty"`
	Cholesterol *float64  `json:"cholesterol,omitempty" bson:"cholesterol,omitempty"`
	UricAcid    *float64  `json:"uric_acid,omitempty" bson:"uric_acid,omitempty"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedBy  string    `json:"recorded_by" bson:"recorded_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// hypertensionSystolic is the systolic threshold used by monthly reports.
const hypertensionSystolic = 140

// IsHypertensive reports whether the reading counts as hypertensive.
func (c *Checkup) IsHypertensive() bool {
	return c.Systolic >= hypertensionSystolic
}
