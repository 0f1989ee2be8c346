// Package document renders the self-contained executable sandbox document:
// pinned runtime libraries, injected shims, the processed source as inert
// text, and the bootstrap compile/mount loop.
package document

// Theme is the color palette injected into the document as CSS variables
// and as the live CSS framework's color config.
type Theme struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Accent     string `json:"accent" yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Surface    string `json:"surface" yaml:"surface"`
	Text       string `json:"text" yaml:"text"`
}

// DefaultTheme returns the neutral palette used when the host sends no
// overrides.
func DefaultTheme() Theme {
	return Theme{
		Primary:    "#6366f1",
		Secondary:  "#8b5cf6",
		Accent:     "#ec4899",
		Background: "#0f172a",
		Surface:    "#1e293b",
		Text:       "#f1f5f9",
	}
}

// Merge returns a copy of t with non-empty fields of override applied.
func (t Theme) Merge(override *Theme) Theme {
	if override == nil {
		return t
	}
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Theme{
		Primary:    pick(t.Primary, override.Primary),
		Secondary:  pick(t.Secondary, override.Secondary),
		Accent:     pick(t.Accent, override.Accent),
		Background: pick(t.Background, override.Background),
		Surface:    pick(t.Surface, override.Surface),
		Text:       pick(t.Text, override.Text),
	}
}
