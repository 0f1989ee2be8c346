package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/glasspane-dev/glasspane/internal/document"
	"github.com/glasspane-dev/glasspane/internal/snapshot"
)

// sourceFlags are the input selectors shared by render and regress-style
// commands. Exactly one of them must be set.
type sourceFlags struct {
	file     string
	dir      string
	manifest string
}

func (f *sourceFlags) validate() error {
	set := 0
	for _, v := range []string{f.file, f.dir, f.manifest} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --file, --dir, or --project must be given")
	}
	return nil
}

// loadSnapshot builds the project snapshot from whichever selector is set.
func loadSnapshot(f sourceFlags) (*snapshot.Snapshot, error) {
	switch {
	case f.dir != "":
		return snapshot.LoadDir(f.dir)
	case f.manifest != "":
		return snapshot.LoadManifest(f.manifest)
	default:
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("reading source file: %w", err)
		}
		return snapshot.FromCode(string(data))
	}
}

// configTheme assembles theme overrides from the config file. Only keys
// the user actually set survive; the rest stay on the default palette.
func configTheme() *document.Theme {
	theme := document.Theme{
		Primary:    viper.GetString("theme.primary"),
		Secondary:  viper.GetString("theme.secondary"),
		Accent:     viper.GetString("theme.accent"),
		Background: viper.GetString("theme.background"),
		Surface:    viper.GetString("theme.surface"),
		Text:       viper.GetString("theme.text"),
	}
	if theme == (document.Theme{}) {
		return nil
	}
	return &theme
}

// writeOutput writes content to path, or stdout for "-" and empty.
func writeOutput(path, content string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if !strings.HasSuffix(path, ".html") {
		path += ".html"
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
