package eraser

import (
	"regexp"
	"strings"
)

// platformModules are always provided by the sandbox runtime; their import
// lines are removed but their bindings are never recorded for stubbing.
var platformModules = map[string]bool{
	"react":             true,
	"react-dom":         true,
	"react-dom/client":  true,
	"react/jsx-runtime": true,
}

var (
	// import <clause> from "<module>"
	importFrom = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:type\s+)?([^'"]+?)\s+from\s+['"]([^'"]+)['"]\s*;?[ \t]*$`)
	// Same form with the named list broken across lines.
	importFromWrapped = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:type\s+)?([^'"{]*\{[^}]*\})\s*from\s+['"]([^'"]+)['"]\s*;?[ \t]*$`)
	// import "<module>" (side effects only, typically CSS)
	importBare = regexp.MustCompile(`(?m)^[ \t]*import\s+['"]([^'"]+)['"]\s*;?[ \t]*$`)

	namespaceClause = regexp.MustCompile(`\*\s+as\s+([A-Za-z_$][\w$]*)`)
	namedList       = regexp.MustCompile(`\{([^}]*)\}`)
	defaultName     = regexp.MustCompile(`^([A-Za-z_$][\w$]*)`)
)

// extractImports removes every import line and records the bindings of
// non-platform modules.
func extractImports(source string) (string, []ImportRecord) {
	var records []ImportRecord

	for _, pattern := range []*regexp.Regexp{importFrom, importFromWrapped} {
		source = pattern.ReplaceAllStringFunc(source, func(line string) string {
			m := pattern.FindStringSubmatch(line)
			clause, module := strings.TrimSpace(m[1]), m[2]
			if !platformModules[module] {
				records = append(records, parseClause(clause, module)...)
			}
			return ""
		})
	}

	source = importBare.ReplaceAllString(source, "")

	return source, records
}

// parseClause splits an import clause into its bindings. Handles default,
// namespace, and named forms in any combination, with aliases. Type-only
// bindings inside the braces carry no runtime meaning and are skipped.
func parseClause(clause, module string) []ImportRecord {
	var records []ImportRecord

	if m := namedList.FindStringSubmatch(clause); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.HasPrefix(part, "type ") {
				continue
			}
			local := part
			if i := strings.Index(part, " as "); i >= 0 {
				local = strings.TrimSpace(part[i+len(" as "):])
			}
			if local != "" {
				records = append(records, ImportRecord{LocalName: local, ModulePath: module})
			}
		}
		clause = namedList.ReplaceAllString(clause, "")
	}

	if m := namespaceClause.FindStringSubmatch(clause); m != nil {
		records = append(records, ImportRecord{LocalName: m[1], ModulePath: module})
		clause = namespaceClause.ReplaceAllString(clause, "")
	}

	clause = strings.Trim(strings.TrimSpace(clause), ",")
	clause = strings.TrimSpace(clause)
	if m := defaultName.FindStringSubmatch(clause); m != nil {
		records = append(records, ImportRecord{LocalName: m[1], ModulePath: module})
	}

	return records
}
