package stubs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/glasspane-dev/glasspane/internal/eraser"
)

// Block is the synthesized declaration block, additive to the erased
// source, plus the side tables the document builder needs.
type Block struct {
	// Code is the declaration block, prepended to the erased source.
	Code string
	// Icons are the icon-table names the source actually imported; each
	// becomes a binding to the shared icon proxy.
	Icons []string
	// Libraries are the allow-listed names in use, provided by the
	// in-document runtime shims.
	Libraries []string
	// Stubbed are the unknown names that received synthesized stubs.
	Stubbed []string
	// Classifications records the kind decided for every import.
	Classifications []Classification
}

// hookName is the reserved hook prefix: `use` followed by an uppercase
// letter.
var hookName = regexp.MustCompile(`^use[A-Z]`)

// declarationPatterns recognize local declarations. A name already
// declared locally is never stubbed, even if also imported.
var declarationPatterns = regexp.MustCompile(`(?m)^[ \t]*(?:async\s+)?(?:function|class|const|let|var)\s+([A-Za-z_$][\w$]*)`)

// Synthesize classifies every import record against the erased source and
// produces the stub block. Classification order is fixed (platform, icon,
// library, unknown); duplicates are collapsed on first sight.
func Synthesize(erased eraser.Result, cfg Config) Block {
	declared := declaredNames(erased.Source)

	var block Block
	seen := make(map[string]bool)
	var stubDecls []string

	for _, rec := range erased.Imports {
		if seen[rec.LocalName] {
			continue
		}
		seen[rec.LocalName] = true

		kind := cfg.Classify(rec.LocalName)
		if declared[rec.LocalName] {
			// Declared wins: record the classification for diagnostics but
			// emit nothing.
			block.Classifications = append(block.Classifications, Classification{
				Name: rec.LocalName, Module: rec.ModulePath, Kind: kind,
			})
			continue
		}

		block.Classifications = append(block.Classifications, Classification{
			Name: rec.LocalName, Module: rec.ModulePath, Kind: kind,
		})

		switch kind {
		case KindPlatform:
			// Provided by the runtime globals; nothing to synthesize.
		case KindIcon:
			block.Icons = append(block.Icons, rec.LocalName)
		case KindLibrary:
			block.Libraries = append(block.Libraries, rec.LocalName)
		case KindUnknown:
			block.Stubbed = append(block.Stubbed, rec.LocalName)
			stubDecls = append(stubDecls, stubFor(rec.LocalName))
		}
	}

	sort.Strings(block.Icons)
	sort.Strings(block.Libraries)

	if len(stubDecls) > 0 {
		block.Code = strings.Join(stubDecls, "\n") + "\n"
	}
	return block
}

// stubFor synthesizes one minimal implementation. Hook-shaped names get a
// trivial state-holding hook; everything else is a pass-through component
// rendering its children and forwarding other props.
func stubFor(name string) string {
	if hookName.MatchString(name) {
		return fmt.Sprintf(
			"const %s = (initial) => { const [value, setValue] = React.useState(initial ?? null); return [value, setValue]; };",
			name)
	}
	return fmt.Sprintf(
		"const %s = ({ children, ...props }) => <div data-stub=%q {...props}>{children}</div>;",
		name, name)
}

// declaredNames scans the erased source for local declarations.
func declaredNames(source string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range declarationPatterns.FindAllStringSubmatch(source, -1) {
		names[m[1]] = true
	}
	return names
}
