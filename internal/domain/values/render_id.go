package values

import (
	"fmt"

	"github.com/google/uuid"
)

// RenderID uniquely identifies a single render pass. Every render produces
// a fresh ID so stale sandbox messages can be told apart from current ones.
type RenderID struct {
	value uuid.UUID
}

// NewRenderID creates a new random render ID.
func NewRenderID() RenderID {
	return RenderID{value: uuid.New()}
}

// ParseRenderID parses a string into a RenderID.
func ParseRenderID(s string) (RenderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RenderID{}, fmt.Errorf("invalid render ID: %w", err)
	}
	return RenderID{value: id}, nil
}

// MustParseRenderID parses a string or panics (for tests only).
func MustParseRenderID(s string) RenderID {
	id, err := ParseRenderID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation.
func (r RenderID) String() string {
	return r.value.String()
}

// IsZero returns true if this is the zero value.
func (r RenderID) IsZero() bool {
	return r.value == uuid.Nil
}

// Equals checks if two RenderIDs are equal.
func (r RenderID) Equals(other RenderID) bool {
	return r.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (r RenderID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RenderID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid render ID JSON")
	}
	s = s[1 : len(s)-1]

	id, err := ParseRenderID(s)
	if err != nil {
		return err
	}
	*r = id
	return nil
}
