// Package stubs classifies every identifier pulled from removed imports
// and synthesizes minimal pass-through implementations for the ones the
// sandbox runtime does not provide.
package stubs

import "fmt"

// Kind is the closed classification of an imported identifier. Every
// identifier is exactly one Kind; classification is a pure function of the
// configuration tables and is stable across runs.
type Kind string

const (
	// KindPlatform is a runtime primitive the sandbox always provides.
	KindPlatform Kind = "platform"
	// KindIcon is satisfied by the shared icon-rendering proxy.
	KindIcon Kind = "icon"
	// KindLibrary is on the allow-list of shimmed runtime libraries.
	KindLibrary Kind = "library"
	// KindUnknown gets a synthesized stub.
	KindUnknown Kind = "unknown"
)

// Validate returns an error if the kind value is invalid.
func (k Kind) Validate() error {
	switch k {
	case KindPlatform, KindIcon, KindLibrary, KindUnknown:
		return nil
	default:
		return fmt.Errorf("invalid identifier kind: %s", k)
	}
}

// Classification ties an imported local name to its kind.
type Classification struct {
	Name   string `json:"name"`
	Module string `json:"module"`
	Kind   Kind   `json:"kind"`
}
