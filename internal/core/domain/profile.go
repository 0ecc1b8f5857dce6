package domain

import "time"

// Profile is the record of an elder enrolled in the community checkup
// programme. QRCodeID is the opaque printable identifier minted at creation;
// the scannable payload itself is recomputed from ID and FullName on demand.
type Profile struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	NIK       string    `json:"nik,omitempty" bson:"nik,omitempty"`
	FullName  string    `json:"full_name" bson:"full_name"`
	BirthDate time.Time `json:"birth_date" bson:"birth_date"`
	Gender    string    `json:"gender" bson:"gender"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	QRCodeID  string    `json:"qr_code_id" bson:"qr_code_id"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Age returns the profile's age in whole years at the given time.
func (p *Profile) Age(at time.Time) int {
	years := at.Year() - p.BirthDate.Year()
	if at.YearDay() < p.BirthDate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
