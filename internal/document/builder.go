package document

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/glasspane-dev/glasspane/internal/eraser"
	"github.com/glasspane-dev/glasspane/internal/stubs"
)

//go:embed assets/*
var assets embed.FS

// Builder renders sandbox documents. Its tables (theme, pins) are fixed at
// construction; Build itself is pure and safe to call per update event.
type Builder struct {
	theme Theme
	pins  Pins
	title string
	tmpl  *template.Template
	base  string
}

// Option configures a Builder.
type Option func(*Builder)

// WithTheme overrides palette fields; empty fields keep the default.
func WithTheme(t *Theme) Option {
	return func(b *Builder) { b.theme = b.theme.Merge(t) }
}

// WithPins replaces the runtime library pins.
func WithPins(p Pins) Option {
	return func(b *Builder) { b.pins = p }
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(b *Builder) { b.title = title }
}

// NewBuilder parses the embedded assets and validates the configured pins.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		theme: DefaultTheme(),
		pins:  DefaultPins(),
		title: "Glasspane Preview",
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.pins.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime pins: %w", err)
	}

	tmpl, err := template.ParseFS(assets, "assets/document.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	b.tmpl = tmpl

	base, err := assets.ReadFile("assets/base.css")
	if err != nil {
		return nil, fmt.Errorf("reading base stylesheet: %w", err)
	}
	b.base = string(base)

	return b, nil
}

// Input is everything one document render needs: the erased source, the
// synthesized stub block with its side tables, the entry's root component
// name, and any plain CSS from the snapshot.
type Input struct {
	Source    string
	Stubs     stubs.Block
	EntryName string
	ExtraCSS  []string
	// Theme optionally overrides the builder's palette for this render.
	Theme *Theme
}

type templateData struct {
	Title      string
	Pins       Pins
	Theme      Theme
	BaseCSS    string
	ExtraCSS   []string
	SourceText string
	EntryName  string
	DefaultAlias string
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Build renders the complete self-contained document.
func (b *Builder) Build(in Input) (string, error) {
	entry := in.EntryName
	if !identifier.MatchString(entry) {
		entry = ""
	}

	var css []string
	for _, sheet := range in.ExtraCSS {
		if stripped := StripBuildDirectives(sheet); strings.TrimSpace(stripped) != "" {
			css = append(css, stripped)
		}
	}

	data := templateData{
		Title:        b.title,
		Pins:         b.pins,
		Theme:        b.theme.Merge(in.Theme),
		BaseCSS:      b.base,
		ExtraCSS:     css,
		SourceText:   inertSource(prelude(in.Stubs) + in.Stubs.Code + in.Source),
		EntryName:    entry,
		DefaultAlias: eraser.DefaultAlias,
	}

	var out strings.Builder
	if err := b.tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering sandbox document: %w", err)
	}
	return out.String(), nil
}

// prelude binds the icon-table and allow-listed library names the source
// uses to the in-document runtime shims, ahead of the stub block.
func prelude(block stubs.Block) string {
	var b strings.Builder
	for _, name := range sorted(block.Icons) {
		fmt.Fprintf(&b, "const %s = window.GlasspaneRuntime.icon(%q);\n", name, name)
	}
	for _, name := range sorted(block.Libraries) {
		fmt.Fprintf(&b, "const %s = window.GlasspaneRuntime[%q];\n", name, name)
	}
	return b.String()
}

func sorted(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

// inertSource makes the processed program safe to embed as text inside a
// script element: a closing script sequence in the payload would otherwise
// terminate the element early.
func inertSource(src string) string {
	return strings.ReplaceAll(src, "</script", "<\\/script")
}

var (
	tailwindDirective = regexp.MustCompile(`(?m)^\s*@tailwind\b[^\n]*$`)
	applyDirective    = regexp.MustCompile(`(?m)^\s*@apply\b[^\n]*$`)
	layerHead         = regexp.MustCompile(`@layer\s+[\w,\s-]+\s*\{`)
)

// StripBuildDirectives removes build-tool-only CSS syntax so snapshot
// stylesheets load as plain CSS. The utility framework itself loads live
// in the document, so its directives carry no meaning here.
func StripBuildDirectives(css string) string {
	css = tailwindDirective.ReplaceAllString(css, "")
	css = applyDirective.ReplaceAllString(css, "")
	// @layer wrappers are unwrapped rather than dropped: the rules inside
	// are plain CSS worth keeping.
	for {
		loc := layerHead.FindStringIndex(css)
		if loc == nil {
			break
		}
		end, ok := matchBrace(css, loc[1]-1)
		if !ok {
			break
		}
		inner := css[loc[1] : end-1]
		css = css[:loc[0]] + inner + css[end:]
	}
	return css
}

// matchBrace returns the index just past the brace matching css[open].
func matchBrace(css string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
