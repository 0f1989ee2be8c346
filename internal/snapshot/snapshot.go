// Package snapshot provides the project snapshot model: the set of
// generated source files (plus an optional raw fallback) that one render
// pass operates on. Snapshots are immutable once constructed.
package snapshot

import (
	"fmt"
	"sort"

	"github.com/glasspane-dev/glasspane/internal/domain/values"
)

// SourceFile is one generated file. Identity is the path; content is
// immutable for the lifetime of the render pass.
type SourceFile struct {
	Path    values.SourcePath `json:"path" yaml:"path"`
	Content string            `json:"content" yaml:"content"`
}

// Snapshot is an ordered set of source files plus an optional single-string
// fallback. Invariant: if the file set is empty, the fallback must be
// non-empty. Both empty is a caller error rejected at construction.
type Snapshot struct {
	files    []SourceFile
	byPath   map[string]int
	fallback string
}

// New builds a Snapshot from a path→content map and a fallback string.
// Paths are validated and normalized; constructing from a map, file order
// is fixed by sorting paths so repeated renders see the same sequence.
func New(files map[string]string, fallback string) (*Snapshot, error) {
	if len(files) == 0 && fallback == "" {
		return nil, fmt.Errorf("snapshot requires at least one file or a non-empty fallback")
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	s := &Snapshot{
		byPath:   make(map[string]int, len(files)),
		fallback: fallback,
	}
	for _, raw := range paths {
		sp, err := values.NewSourcePath(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot path %q: %w", raw, err)
		}
		if _, dup := s.byPath[sp.String()]; dup {
			return nil, fmt.Errorf("duplicate snapshot path after normalization: %s", sp)
		}
		s.byPath[sp.String()] = len(s.files)
		s.files = append(s.files, SourceFile{Path: sp, Content: files[raw]})
	}
	return s, nil
}

// FromCode builds a single-fallback snapshot from a raw code string.
func FromCode(code string) (*Snapshot, error) {
	return New(nil, code)
}

// Files returns the snapshot's files in their fixed order.
// The returned slice must not be mutated.
func (s *Snapshot) Files() []SourceFile {
	return s.files
}

// Get returns the file at the given (normalized) path.
func (s *Snapshot) Get(path string) (SourceFile, bool) {
	sp, err := values.NewSourcePath(path)
	if err != nil {
		return SourceFile{}, false
	}
	i, ok := s.byPath[sp.String()]
	if !ok {
		return SourceFile{}, false
	}
	return s.files[i], true
}

// Len returns the number of files.
func (s *Snapshot) Len() int {
	return len(s.files)
}

// Fallback returns the raw fallback string (may be empty when files exist).
func (s *Snapshot) Fallback() string {
	return s.fallback
}

// PathContents returns a plain path→content map, used by the file tree and
// the server API.
func (s *Snapshot) PathContents() map[string]string {
	out := make(map[string]string, len(s.files))
	for _, f := range s.files {
		out[f.Path.String()] = f.Content
	}
	return out
}
