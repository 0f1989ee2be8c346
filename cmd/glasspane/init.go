package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/glasspane-dev/glasspane/internal/document"
)

type initOptions struct {
	output        string
	palette       string
	addr          string
	noInteractive bool
}

// palettePresets are the ready-made themes offered during init.
var palettePresets = map[string]document.Theme{
	"indigo": document.DefaultTheme(),
	"ocean": {
		Primary:    "#0ea5e9",
		Secondary:  "#06b6d4",
		Accent:     "#2dd4bf",
		Background: "#082f49",
		Surface:    "#0c4a6e",
		Text:       "#e0f2fe",
	},
	"ember": {
		Primary:    "#f97316",
		Secondary:  "#ef4444",
		Accent:     "#facc15",
		Background: "#1c1917",
		Surface:    "#292524",
		Text:       "#fafaf9",
	},
	"paper": {
		Primary:    "#2563eb",
		Secondary:  "#7c3aed",
		Accent:     "#db2777",
		Background: "#ffffff",
		Surface:    "#f1f5f9",
		Text:       "#0f172a",
	},
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Init writes a glasspane config file with a theme palette and server
defaults. Without --no-interactive it walks through the choices.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "config path (default $HOME/.glasspane.yaml)")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "theme palette: indigo, ocean, ember, paper")
	cmd.Flags().StringVar(&opts.addr, "addr", ":7411", "default serve address")
	cmd.Flags().BoolVar(&opts.noInteractive, "no-interactive", false, "skip prompts, use flags and defaults")

	return cmd
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func runInit(opts *initOptions) error {
	if opts.palette == "" {
		opts.palette = "indigo"
	}

	if !opts.noInteractive {
		err := huh.NewSelect[string]().
			Title("Theme palette").
			Options(
				huh.NewOption("Indigo (default)", "indigo"),
				huh.NewOption("Ocean", "ocean"),
				huh.NewOption("Ember", "ember"),
				huh.NewOption("Paper (light)", "paper"),
			).
			Value(&opts.palette).
			Run()
		if err != nil {
			return err
		}

		err = huh.NewInput().
			Title("Serve address").
			Value(&opts.addr).
			Run()
		if err != nil {
			return err
		}
	}

	theme, ok := palettePresets[opts.palette]
	if !ok {
		return fmt.Errorf("unknown palette %q (choose indigo, ocean, ember, or paper)", opts.palette)
	}

	path := opts.output
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".glasspane.yaml")
	}

	cfg := map[string]interface{}{
		"theme": theme,
		"serve": map[string]string{"addr": opts.addr},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote %s (palette: %s)\n", path, opts.palette)
	return nil
}
