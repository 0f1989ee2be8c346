package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glasspane-dev/glasspane/internal/preview"
	"github.com/glasspane-dev/glasspane/internal/watch"
)

func newRenderCmd() *cobra.Command {
	var (
		src     sourceFlags
		out     string
		watched bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build a sandbox document from project sources",
		Long: `Render merges the project's source files, erases module syntax the
in-document compiler cannot execute, synthesizes stand-ins for imports
it cannot satisfy, and writes one self-contained HTML document.

Examples:
  # Render a single generated file
  glasspane render --file App.tsx --out preview.html

  # Render a project directory and re-render on change
  glasspane render --dir ./my-app --out preview.html --watch

  # Render from a project manifest
  glasspane render --project project.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := src.validate(); err != nil {
				return err
			}
			if watched && src.dir == "" {
				return fmt.Errorf("--watch requires --dir")
			}

			renderer, err := preview.NewRenderer()
			if err != nil {
				return err
			}

			if err := renderOnce(renderer, src, out); err != nil {
				return err
			}
			if !watched {
				return nil
			}
			return renderLoop(cmd.Context(), renderer, src, out)
		},
	}

	cmd.Flags().StringVarP(&src.file, "file", "f", "", "single source file to render")
	cmd.Flags().StringVarP(&src.dir, "dir", "d", "", "project directory to render")
	cmd.Flags().StringVarP(&src.manifest, "project", "p", "", "project manifest (YAML) to render")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVarP(&watched, "watch", "w", false, "re-render when the directory changes")

	return cmd
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}

func renderOnce(renderer *preview.Renderer, src sourceFlags, out string) error {
	snap, err := loadSnapshot(src)
	if err != nil {
		return err
	}

	result, err := renderer.RenderSnapshot(snap, configTheme())
	if err != nil {
		return err
	}

	slog.Info("Rendered document",
		"renderID", result.ID,
		"files", snap.Len(),
		"entry", result.EntryPath,
		"fallback", result.UsedFallback,
		"stubbed", len(result.Stubbed))

	return writeOutput(out, result.Document)
}

// renderLoop re-renders after every debounced change batch until
// interrupted. A render failure is logged, not fatal; the previous
// output stays in place.
func renderLoop(ctx context.Context, renderer *preview.Renderer, src sourceFlags, out string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(src.dir, func(paths []string) {
		slog.Debug("Source change detected", "files", len(paths))
		if err := renderOnce(renderer, src, out); err != nil {
			slog.Error("Re-render failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	slog.Info("Watching for changes", "dir", src.dir)
	return watcher.Run(ctx)
}
