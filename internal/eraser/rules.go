package eraser

import (
	"fmt"
	"regexp"
	"strings"
)

// A rule is one best-effort substitution pass. Rules never fail; on
// unexpected shapes they leave the source untouched.
type rule func(string) string

var exportRules = []rule{
	rewriteDefaultFunction,
	dropDefaultReExport,
	assignDefaultExpression,
	dropExportLists,
	stripExportKeyword,
}

var typeRules = []rule{
	removeInterfaces,
	removeTypeAliases,
	rewriteEnums,
	stripTypeAssertions,
	stripGenericArguments,
	stripReturnAnnotations,
	stripBindingAnnotations,
	stripParamAnnotations,
	stripNonNullChains,
}

// ---- export rewrites -------------------------------------------------------

var (
	defaultFunction = regexp.MustCompile(`export\s+default\s+((?:async\s+)?function\b)`)
	defaultReExport = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+([A-Za-z_$][\w$]*)\s*;?[ \t]*$`)
	defaultExpr     = regexp.MustCompile(`(?m)^([ \t]*)export\s+default\s+`)
	exportList      = regexp.MustCompile(`(?m)^[ \t]*export\s*\{[^}]*\}\s*(?:from\s*['"][^'"]+['"]\s*)?;?[ \t]*$`)
	exportKeyword   = regexp.MustCompile(`(?m)^([ \t]*)export\s+(const|let|var|function|class|async)\b`)

	declaredName = `(?:function|class|const|let|var)\s+%s\b`
)

// rewriteDefaultFunction turns `export default function X` into a plain
// declaration the root resolver can find by name.
func rewriteDefaultFunction(src string) string {
	return defaultFunction.ReplaceAllString(src, "$1")
}

// dropDefaultReExport removes `export default X;` when X is already
// declared in the program; the declaration wins and the root resolver
// locates it by name.
func dropDefaultReExport(src string) string {
	return defaultReExport.ReplaceAllStringFunc(src, func(line string) string {
		name := defaultReExport.FindStringSubmatch(line)[1]
		decl := regexp.MustCompile(fmt.Sprintf(declaredName, regexp.QuoteMeta(name)))
		if decl.MatchString(src) {
			return ""
		}
		return line
	})
}

// assignDefaultExpression binds any remaining default-export expression to
// the reserved internal alias.
func assignDefaultExpression(src string) string {
	return defaultExpr.ReplaceAllString(src, "${1}const "+DefaultAlias+" = ")
}

func dropExportLists(src string) string {
	return exportList.ReplaceAllString(src, "")
}

func stripExportKeyword(src string) string {
	return exportKeyword.ReplaceAllString(src, "$1$2")
}

// ---- type erasure ----------------------------------------------------------

var (
	interfaceHead = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?interface\s+[A-Za-z_$][\w$]*(?:<[^<>{]*>)?(?:\s+extends\s+[^{]+)?\s*\{`)
	typeAliasHead = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?type\s+[A-Za-z_$][\w$]*(?:<[^<>=]*>)?\s*=`)
	enumBlock     = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)\s*\{([^}]*)\}`)

	typeName = `(?:string|number|boolean|any|void|null|undefined|never|unknown|object|bigint|symbol|React\.[A-Za-z][\w$]*|JSX\.[A-Za-z][\w$]*|[A-Z][\w$.]*)(?:<[^<>]*>)?(?:\[\])?`

	typeAssertion     = regexp.MustCompile(`\s+as\s+(?:const\b|` + typeName + `)`)
	satisfiesClause   = regexp.MustCompile(`\s+satisfies\s+` + typeName)
	genericCall       = regexp.MustCompile(`\b(useState|useRef|useReducer|useMemo|useCallback|useContext|createContext|forwardRef|memo)\s*<[^<>()]*>\s*\(`)
	returnAnnotation  = regexp.MustCompile(`\)\s*:\s*` + typeName + `(?:\s*\|\s*` + typeName + `)*\s*(\{|=>)`)
	bindingAnnotation = regexp.MustCompile(`\b(const|let|var)(\s+[A-Za-z_$][\w$]*)\s*:\s*` + typeName + `(?:\s*\|\s*` + typeName + `)*(\s*=)`)
	paramAnnotation   = regexp.MustCompile(`([(,]\s*[A-Za-z_$][\w$]*)\??\s*:\s*` + typeName + `(?:\s*\|\s*` + typeName + `)*\s*([,)=])`)
	destructuredParam = regexp.MustCompile(`\)\s*:\s*` + typeName + `|(\([ \t]*\{[^{}]*\})\s*:\s*` + typeName)
)

// removeInterfaces drops interface declarations wholesale. The body may
// nest braces, so the block end is found by brace counting rather than a
// pattern.
func removeInterfaces(src string) string {
	for {
		loc := interfaceHead.FindStringIndex(src)
		if loc == nil {
			return src
		}
		end, ok := matchBrace(src, loc[1]-1)
		if !ok {
			// Unterminated block: leave it for the sandbox compiler to report.
			return src
		}
		src = src[:loc[0]] + src[end:]
	}
}

// removeTypeAliases drops `type X = ...` statements through their
// terminating semicolon (or line end for unterminated ones).
func removeTypeAliases(src string) string {
	for {
		loc := typeAliasHead.FindStringIndex(src)
		if loc == nil {
			return src
		}
		end := statementEnd(src, loc[1])
		src = src[:loc[0]] + src[end:]
	}
}

// rewriteEnums turns an enum block into a plain object literal. Members
// without an explicit value default to the key's own name as a string.
func rewriteEnums(src string) string {
	return enumBlock.ReplaceAllStringFunc(src, func(block string) string {
		m := enumBlock.FindStringSubmatch(block)
		name, body := m[1], m[2]

		var members []string
		for _, entry := range strings.Split(body, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if key, value, ok := strings.Cut(entry, "="); ok {
				members = append(members, fmt.Sprintf("%s: %s", strings.TrimSpace(key), strings.TrimSpace(value)))
			} else {
				members = append(members, fmt.Sprintf("%s: %q", entry, entry))
			}
		}
		return fmt.Sprintf("const %s = { %s };", name, strings.Join(members, ", "))
	})
}

func stripTypeAssertions(src string) string {
	src = typeAssertion.ReplaceAllString(src, "")
	return satisfiesClause.ReplaceAllString(src, "")
}

func stripGenericArguments(src string) string {
	return genericCall.ReplaceAllString(src, "$1(")
}

func stripReturnAnnotations(src string) string {
	return returnAnnotation.ReplaceAllString(src, ") $1")
}

func stripBindingAnnotations(src string) string {
	return bindingAnnotation.ReplaceAllString(src, "$1$2$3")
}

func stripParamAnnotations(src string) string {
	// Run to fixpoint: `(a: string, b: number)` overlaps on the comma.
	for {
		next := paramAnnotation.ReplaceAllString(src, "$1$2")
		next = destructuredParam.ReplaceAllStringFunc(next, func(match string) string {
			m := destructuredParam.FindStringSubmatch(match)
			if m[1] != "" {
				return m[1]
			}
			return ")"
		})
		if next == src {
			return src
		}
		src = next
	}
}

func stripNonNullChains(src string) string {
	return strings.ReplaceAll(src, "!.", ".")
}

// ---- helpers ---------------------------------------------------------------

// matchBrace returns the index just past the brace matching src[open].
func matchBrace(src string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
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

// statementEnd returns the index just past the semicolon terminating the
// statement starting after from, honoring brace/paren/angle nesting. A
// statement without a semicolon ends at the first newline that is not a
// continuation: the text so far ends mid-expression, or the next line
// picks the union/intersection back up.
func statementEnd(src string, from int) int {
	depth := 0
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '{', '(', '[', '<':
			depth++
		case '}', ')', ']', '>':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return i + 1
			}
		case '\n':
			if depth != 0 {
				continue
			}
			if continuesStatement(strings.TrimSpace(src[from:i])) {
				continue
			}
			if next := strings.TrimSpace(lineAt(src, i+1)); strings.HasPrefix(next, "|") || strings.HasPrefix(next, "&") {
				continue
			}
			return i
		}
	}
	return len(src)
}

// continuesStatement reports whether text ends in a token that cannot
// close a type expression, so the statement spills onto the next line.
func continuesStatement(text string) bool {
	if text == "" {
		return true
	}
	switch text[len(text)-1] {
	case '|', '&', '=', ',', '{', '(', '[', '<':
		return true
	}
	return false
}

func lineAt(src string, i int) string {
	if i >= len(src) {
		return ""
	}
	if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
		return src[i : i+j]
	}
	return src[i:]
}
