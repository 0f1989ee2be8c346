package document

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Pin is one fixed-version external runtime library loaded live at
// sandbox start.
type Pin struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	URL     string `json:"url" yaml:"url"`
}

// Pins is the complete set of runtime libraries the document embeds.
type Pins struct {
	UI       Pin `json:"ui" yaml:"ui"`             // platform UI library
	Mount    Pin `json:"mount" yaml:"mount"`       // its mounting counterpart
	Compiler Pin `json:"compiler" yaml:"compiler"` // just-in-time component-language compiler
	CSS      Pin `json:"css" yaml:"css"`           // utility CSS framework, loaded live
}

// DefaultPins returns the standard fixed versions.
func DefaultPins() Pins {
	return Pins{
		UI: Pin{
			Name:    "react",
			Version: "18.3.1",
			URL:     "https://unpkg.com/react@18.3.1/umd/react.production.min.js",
		},
		Mount: Pin{
			Name:    "react-dom",
			Version: "18.3.1",
			URL:     "https://unpkg.com/react-dom@18.3.1/umd/react-dom.production.min.js",
		},
		Compiler: Pin{
			Name:    "@babel/standalone",
			Version: "7.26.10",
			URL:     "https://unpkg.com/@babel/standalone@7.26.10/babel.min.js",
		},
		CSS: Pin{
			Name:    "tailwindcss",
			Version: "3.4.16",
			URL:     "https://cdn.tailwindcss.com/3.4.16",
		},
	}
}

// Validate checks every pinned version parses as semver. A bad override is
// a configuration error, caught before any document is built.
func (p Pins) Validate() error {
	for _, pin := range []Pin{p.UI, p.Mount, p.Compiler, p.CSS} {
		if pin.URL == "" {
			return fmt.Errorf("runtime pin %s has no URL", pin.Name)
		}
		if _, err := semver.NewVersion(pin.Version); err != nil {
			return fmt.Errorf("runtime pin %s: invalid version %q: %w", pin.Name, pin.Version, err)
		}
	}
	return nil
}
