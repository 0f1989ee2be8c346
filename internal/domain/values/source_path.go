// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"path"
	"strings"
)

// SourcePath represents a validated, slash-normalized relative path of a
// file inside a project snapshot. Enforces non-empty paths that cannot
// escape the snapshot root.
type SourcePath struct {
	value string
}

// NewSourcePath creates a SourcePath with validation.
func NewSourcePath(p string) (SourcePath, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return SourcePath{}, fmt.Errorf("source path cannot be empty")
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return SourcePath{}, fmt.Errorf("source path escapes snapshot root: %s", p)
	}
	return SourcePath{value: cleaned}, nil
}

// MustNewSourcePath creates a SourcePath or panics.
func MustNewSourcePath(p string) SourcePath {
	sp, err := NewSourcePath(p)
	if err != nil {
		panic(err)
	}
	return sp
}

// String returns the string representation.
func (p SourcePath) String() string {
	return p.value
}

// Ext returns the file extension including the leading dot, lowercased.
func (p SourcePath) Ext() string {
	return strings.ToLower(path.Ext(p.value))
}

// Base returns the file name without directory or extension.
func (p SourcePath) Base() string {
	base := path.Base(p.value)
	return strings.TrimSuffix(base, path.Ext(base))
}

// IsEmpty returns true if this is the zero value.
func (p SourcePath) IsEmpty() bool {
	return p.value == ""
}

// Equals checks if two source paths are equal.
func (p SourcePath) Equals(other SourcePath) bool {
	return p.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (p SourcePath) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SourcePath) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid source path JSON")
	}
	s = s[1 : len(s)-1]

	sp, err := NewSourcePath(s)
	if err != nil {
		return err
	}
	*p = sp
	return nil
}
