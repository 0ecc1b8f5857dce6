package service

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/posyandu/lansia-health/internal/core/domain"
)

// AppTag is the application tag embedded in every structured payload and
// required of every structured payload decoded.
const AppTag = "lansia-health"

const payloadType = "profile"

// legacyPattern matches the historical plain form: the entire input must be
// "QR" followed by one or more digits. The full-match rule is applied
// uniformly in Decode and Validate.
var legacyPattern = regexp.MustCompile(`^QR([0-9]+)$`)

// qrPayload is the structured wire shape.
type qrPayload struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	App       string `json:"app"`
}

// IdentityCodec encodes profile identities into QR-embeddable payloads and
// classifies scanned input into one of the recognised shapes.
type IdentityCodec struct{}

func NewIdentityCodec() *IdentityCodec {
	return &IdentityCodec{}
}

// Encode produces the structured payload for a profile. The timestamp is the
// encode time, so payloads are recomputed rather than stored.
func (IdentityCodec) Encode(profileID, profileName string) (string, error) {
	p := qrPayload{
		Type:      payloadType,
		ID:        profileID,
		Name:      profileName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		App:       AppTag,
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode identity: %w", err)
	}
	return string(raw), nil
}

// Decode classifies input with an ordered decision procedure:
//
//  1. Parse as JSON. On success the payload is Structured iff the app tag
//     matches and both type and id are present; any other parsed shape is
//     Invalid — it does not fall through to the legacy test.
//  2. On parse failure, a full match of "QR<digits>" is Legacy with the digit
//     substring as id.
//  3. Anything else is Invalid.
//
// Parse failure is an expected alternative outcome, not an error: Decode is
// total and deterministic.
func (IdentityCodec) Decode(input string) domain.Identity {
	var p qrPayload
	if err := json.Unmarshal([]byte(input), &p); err == nil {
		if p.App != AppTag || p.Type == "" || p.ID == "" {
			return domain.Identity{Kind: domain.IdentityInvalid}
		}
		issuedAt, _ := time.Parse(time.RFC3339, p.Timestamp)
		return domain.Identity{
			Kind:      domain.IdentityStructured,
			ProfileID: p.ID,
			Name:      p.Name,
			IssuedAt:  issuedAt,
			App:       p.App,
		}
	}

	if m := legacyPattern.FindStringSubmatch(input); m != nil {
		return domain.Identity{Kind: domain.IdentityLegacy, ProfileID: m[1]}
	}

	return domain.Identity{Kind: domain.IdentityInvalid}
}

// Validate reports whether input decodes to a recognised shape.
func (c IdentityCodec) Validate(input string) bool {
	return c.Decode(input).Valid()
}

// GenerateID mints a new opaque printable identifier:
// "QR<profileId>_<base36 millis>_<base36 random>". Unique enough for display
// and printing, not cryptographically unguessable.
func (IdentityCodec) GenerateID(profileID string) string {
	return fmt.Sprintf("QR%s_%s_%s",
		profileID,
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		strconv.FormatUint(uint64(randomUint32()), 36),
	)
}

func randomUint32() uint32 {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return uint32(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint32(b)
}
