// Package preview orchestrates the render pipeline: snapshot → assembler
// → eraser → stub synthesizer → document builder. Every stage is
// synchronous, pure text processing, so a Renderer is safe to re-run on
// each source update, including mid-stream partial updates.
package preview

import (
	"fmt"
	"strings"

	"github.com/glasspane-dev/glasspane/internal/assembler"
	"github.com/glasspane-dev/glasspane/internal/document"
	"github.com/glasspane-dev/glasspane/internal/domain/values"
	"github.com/glasspane-dev/glasspane/internal/eraser"
	"github.com/glasspane-dev/glasspane/internal/filetree"
	"github.com/glasspane-dev/glasspane/internal/snapshot"
	"github.com/glasspane-dev/glasspane/internal/stubs"
)

// Request is the host's input. Files takes precedence over Code when
// non-empty; Code then serves as the raw fallback. Theme optionally
// overrides the default palette.
type Request struct {
	Code  string            `json:"code,omitempty"`
	Files map[string]string `json:"allFiles,omitempty"`
	Theme *document.Theme   `json:"themeColors,omitempty"`
}

// RenderResult is one render pass's output, discarded on the next pass.
type RenderResult struct {
	ID values.RenderID `json:"id"`
	// Document is the self-contained sandbox document, suitable for
	// direct assignment to a sandboxed display surface.
	Document string `json:"document"`
	// EntryPath is the resolved entry file; empty when the fallback was
	// used.
	EntryPath    string `json:"entry_path,omitempty"`
	EntryName    string `json:"entry_name,omitempty"`
	UsedFallback bool   `json:"used_fallback"`
	// Side tables from stub synthesis, for host diagnostics.
	Stubbed   []string `json:"stubbed,omitempty"`
	Icons     []string `json:"icons,omitempty"`
	Libraries []string `json:"libraries,omitempty"`
	// Tree is the navigation hierarchy over the snapshot's file map.
	Tree []*filetree.Node `json:"tree,omitempty"`
}

// Renderer owns the immutable configuration tables and the document
// builder. One Renderer serves any number of sequential renders.
type Renderer struct {
	tables  stubs.Config
	builder *document.Builder
}

// NewRenderer builds a Renderer with default classification tables. The
// builder options configure pins and title; theme arrives per request.
func NewRenderer(opts ...document.Option) (*Renderer, error) {
	builder, err := document.NewBuilder(opts...)
	if err != nil {
		return nil, fmt.Errorf("constructing document builder: %w", err)
	}
	return &Renderer{
		tables:  stubs.DefaultConfig(),
		builder: builder,
	}, nil
}

// Render runs the full pipeline for one request.
func (r *Renderer) Render(req Request) (*RenderResult, error) {
	snap, err := snapshot.New(req.Files, req.Code)
	if err != nil {
		return nil, fmt.Errorf("invalid render request: %w", err)
	}
	return r.RenderSnapshot(snap, req.Theme)
}

// RenderSnapshot runs the pipeline over an already-constructed snapshot.
func (r *Renderer) RenderSnapshot(snap *snapshot.Snapshot, theme *document.Theme) (*RenderResult, error) {
	merged := assembler.Assemble(snap)
	erased := eraser.Erase(merged.Source)
	block := stubs.Synthesize(erased, r.tables)

	doc, err := r.builder.Build(document.Input{
		Source:    erased.Source,
		Stubs:     block,
		EntryName: merged.EntryName,
		ExtraCSS:  styleSheets(snap),
		Theme:     theme,
	})
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		ID:           values.NewRenderID(),
		Document:     doc,
		EntryPath:    merged.EntryPath,
		EntryName:    merged.EntryName,
		UsedFallback: merged.UsedFallback,
		Stubbed:      block.Stubbed,
		Icons:        block.Icons,
		Libraries:    block.Libraries,
		Tree:         filetree.Build(snap.PathContents()),
	}, nil
}

// styleSheets collects the snapshot's plain CSS files in snapshot order.
func styleSheets(snap *snapshot.Snapshot) []string {
	var sheets []string
	for _, f := range snap.Files() {
		if strings.HasSuffix(f.Path.String(), ".css") {
			sheets = append(sheets, f.Content)
		}
	}
	return sheets
}
