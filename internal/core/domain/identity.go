package domain

import "time"

// IdentityKind discriminates the recognised shapes of a scanned QR payload.
type IdentityKind string

const (
	// IdentityStructured is the current JSON payload carrying id, name and
	// encode timestamp.
	IdentityStructured IdentityKind = "structured"
	// IdentityLegacy is the historical plain "QR<digits>" form, kept for
	// cards printed before the structured payload existed. It carries no
	// name or timestamp.
	IdentityLegacy IdentityKind = "legacy"
	// IdentityInvalid marks input that matched neither shape.
	IdentityInvalid IdentityKind = "invalid"
)

// Identity is the decoded form of a QR payload. Decoding is a pure function
// of the input string: the same input always yields the same Kind and fields.
type Identity struct {
	Kind      IdentityKind
	ProfileID string
	Name      string    // structured only
	IssuedAt  time.Time // structured only
	App       string    // structured only
}

// Valid reports whether the payload matched a recognised shape.
func (i Identity) Valid() bool {
	return i.Kind == IdentityStructured || i.Kind == IdentityLegacy
}
