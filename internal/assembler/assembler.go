// Package assembler resolves a multi-file project snapshot into one merged
// source program: helper components first (layout components at the very
// front), the entry file last so it may reference anything above it.
package assembler

import (
	"regexp"
	"strings"

	"github.com/glasspane-dev/glasspane/internal/snapshot"
)

// entryCandidates is the fixed priority list of conventional entry paths.
// First present wins; ties are broken by this order, never by path sort
// order.
var entryCandidates = []string{
	"src/App.tsx",
	"src/App.jsx",
	"src/App.js",
	"App.tsx",
	"App.jsx",
	"App.js",
	"src/app/page.tsx",
	"app/page.tsx",
	"src/pages/index.tsx",
	"pages/index.tsx",
	"src/pages/Index.tsx",
	"src/index.tsx",
	"src/index.jsx",
	"index.tsx",
	"index.jsx",
}

// componentExtensions is the component-language family.
var componentExtensions = map[string]bool{
	".jsx": true,
	".tsx": true,
	".js":  true,
	".ts":  true,
}

// infrastructureNames are base filenames that wrap or bootstrap the app
// rather than define components: render shells, global layouts, document
// wrappers. They never qualify as library candidates.
var infrastructureNames = map[string]bool{
	"main":      true,
	"index":     true,
	"_app":      true,
	"_document": true,
	"vite-env":  true,
	"setup":     true,
}

var (
	// definesSomething: a function/const/class declaration or an export
	// keyword. Excludes pure style/config text.
	definesSomething = regexp.MustCompile(`(?m)^\s*(?:export\s|(?:async\s+)?function\s+\w|const\s+\w|class\s+[A-Z]|let\s+\w|var\s+\w)`)

	// rootComponentExport recognizes a file exporting a root component.
	rootComponentExport = regexp.MustCompile(`export\s+default\s+(?:function\s+)?([A-Za-z_$][\w$]*)`)

	defaultFunctionName = regexp.MustCompile(`export\s+default\s+function\s+([A-Z][\w$]*)`)
	firstComponentDecl  = regexp.MustCompile(`(?:function|const|class)\s+([A-Z][\w$]*)`)
)

// Merged is the output of one assembly pass.
type Merged struct {
	// Source is the concatenated program, entry content last.
	Source string
	// EntryPath is the resolved entry file path; empty when the raw
	// fallback string was used.
	EntryPath string
	// EntryName is the best-effort root component name of the entry.
	EntryName string
	// UsedFallback reports that no entry file was resolvable and the
	// snapshot fallback was emitted instead.
	UsedFallback bool
	// Libraries lists the helper file paths in emission order.
	Libraries []string
}

// Assemble merges a snapshot into a single program. The snapshot invariant
// (files or fallback present) is enforced at snapshot construction, so an
// empty result here cannot occur for a valid snapshot.
func Assemble(snap *snapshot.Snapshot) Merged {
	entry, entryContent, usedFallback := resolveEntry(snap)

	var libs []snapshot.SourceFile
	for _, f := range snap.Files() {
		if f.Path.String() == entry {
			continue
		}
		if isComponentCandidate(f) {
			libs = append(libs, f)
		}
	}
	libs = layoutFirst(libs)

	var b strings.Builder
	var libPaths []string
	for _, f := range libs {
		b.WriteString(f.Content)
		b.WriteString("\n\n")
		libPaths = append(libPaths, f.Path.String())
	}
	b.WriteString(entryContent)

	return Merged{
		Source:       b.String(),
		EntryPath:    entry,
		EntryName:    entryName(entry, entryContent),
		UsedFallback: usedFallback,
		Libraries:    libPaths,
	}
}

// EntryCandidates exposes the conventional entry paths in priority order.
func EntryCandidates() []string {
	out := make([]string, len(entryCandidates))
	copy(out, entryCandidates)
	return out
}

// resolveEntry walks the candidate list, then falls back to any file with a
// root-component export, then to the snapshot's raw fallback. If nothing
// resolves cleanly the first component candidate is the best guess.
func resolveEntry(snap *snapshot.Snapshot) (path, content string, usedFallback bool) {
	for _, candidate := range entryCandidates {
		if f, ok := snap.Get(candidate); ok {
			return f.Path.String(), f.Content, false
		}
	}

	for _, f := range snap.Files() {
		if componentExtensions[f.Path.Ext()] && rootComponentExport.MatchString(f.Content) {
			return f.Path.String(), f.Content, false
		}
	}

	if snap.Fallback() != "" {
		return "", snap.Fallback(), true
	}

	// No conventional entry, no default export, no fallback. Degrade to
	// the first component candidate rather than fail.
	for _, f := range snap.Files() {
		if isComponentCandidate(f) {
			return f.Path.String(), f.Content, false
		}
	}
	return "", "", true
}

// isComponentCandidate reports whether a file qualifies for the merged
// program: component-language extension, not an infrastructure filename,
// and it defines something.
func isComponentCandidate(f snapshot.SourceFile) bool {
	if !componentExtensions[f.Path.Ext()] {
		return false
	}
	if infrastructureNames[strings.ToLower(f.Path.Base())] {
		return false
	}
	return definesSomething.MatchString(f.Content)
}

// layoutFirst pulls layout-named files to the front, preserving relative
// order otherwise, so components that reference a shared layout never
// forward-reference it.
func layoutFirst(files []snapshot.SourceFile) []snapshot.SourceFile {
	var layouts, rest []snapshot.SourceFile
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Path.Base()), "layout") {
			layouts = append(layouts, f)
		} else {
			rest = append(rest, f)
		}
	}
	return append(layouts, rest...)
}

// entryName derives the root component name of the entry content.
func entryName(path, content string) string {
	if m := defaultFunctionName.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := rootComponentExport.FindStringSubmatch(content); m != nil {
		if name := m[1]; name != "function" && name != "" && name[0] >= 'A' && name[0] <= 'Z' {
			return name
		}
	}
	if path != "" {
		if base := baseName(path); base != "" && base[0] >= 'A' && base[0] <= 'Z' {
			return base
		}
	}
	if m := firstComponentDecl.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return "App"
}

func baseName(path string) string {
	base := path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}
