// Package eraser removes syntax the sandbox runtime cannot execute:
// module import/export plumbing and static-type-only constructs. It is a
// deterministic ordered chain of text substitutions, not a parser; the
// input is always close to the target language, and each rule is
// best-effort: a non-matching pattern is a no-op, never an error.
// Residual syntax that survives is reported by the sandbox compiler, not
// treated as a pipeline fault.
package eraser

// ImportRecord is one binding pulled from a removed import line,
// respecting aliasing: `import { X as Y } from "m"` records {Y, "m"}.
type ImportRecord struct {
	LocalName  string `json:"local_name"`
	ModulePath string `json:"module_path"`
}

// Result is the erased program plus the per-module import records the stub
// synthesizer classifies.
type Result struct {
	Source  string
	Imports []ImportRecord
}

// DefaultAlias is the reserved internal name a non-declaration default
// export expression is assigned to. The sandbox bootstrap resolves the
// root component through it first.
const DefaultAlias = "__GlasspaneDefault"

// Erase runs the full rule chain. Order matters: imports must come out
// before export rewrites, and export rewrites before type erasure, so each
// later rule sees the shape the earlier ones guarantee.
func Erase(source string) Result {
	source, imports := extractImports(source)

	for _, rule := range exportRules {
		source = rule(source)
	}
	for _, rule := range typeRules {
		source = rule(source)
	}

	return Result{Source: source, Imports: imports}
}
