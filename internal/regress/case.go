// Package regress runs golden regression cases over the render
// pipeline. Each case is a YAML file pairing a render request with
// expect expressions evaluated against the result; the suite freezes
// observable rewrite behavior so rule changes surface as diffs here
// rather than as silent output drift.
package regress

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/glasspane-dev/glasspane/internal/document"
)

// Case is one regression scenario.
type Case struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Request mirrors the host payload.
	Code  string            `yaml:"code,omitempty"`
	Files map[string]string `yaml:"allFiles,omitempty"`
	Theme *document.Theme   `yaml:"themeColors,omitempty"`

	// Expect lists boolean expressions; all must hold for the case to
	// pass.
	Expect []string `yaml:"expect"`
}

// Validate checks the case is runnable before any rendering happens.
func (c Case) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("case has no name")
	}
	if c.Code == "" && len(c.Files) == 0 {
		return fmt.Errorf("case %q has neither code nor allFiles", c.Name)
	}
	if len(c.Expect) == 0 {
		return fmt.Errorf("case %q has no expect expressions", c.Name)
	}
	return nil
}

// LoadCases reads every .yaml case under dir, sorted by filename so the
// report order is stable.
func LoadCases(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading case directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	cases := make([]Case, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading case %s: %w", name, err)
		}

		var c Case
		if err := yaml.UnmarshalWithOptions(data, &c, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("parsing case %s: %w", name, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("case file %s: %w", name, err)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true
		cases = append(cases, c)
	}
	return cases, nil
}
