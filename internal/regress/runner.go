package regress

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/sync/errgroup"

	"github.com/glasspane-dev/glasspane/internal/preview"
)

// Status is the outcome of one case.
type Status string

const (
	// StatusPass means every expect expression held.
	StatusPass Status = "pass"
	// StatusFail means at least one expectation was false.
	StatusFail Status = "fail"
	// StatusError means the render or an expression did not complete.
	StatusError Status = "error"
)

// CaseResult reports one case's outcome. Failures holds the expect
// expressions that came back false; Err is set for StatusError.
type CaseResult struct {
	Name     string
	Status   Status
	Failures []string
	Err      error
}

// Report is the whole suite's outcome, in case order.
type Report struct {
	Results []CaseResult
}

// Passed reports whether every case passed.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if res.Status != StatusPass {
			return false
		}
	}
	return true
}

// Summary renders a one-line-per-case report.
func (r Report) Summary() string {
	var b strings.Builder
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%-5s %s", res.Status, res.Name)
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "\n        expect: %s", f)
		}
		if res.Err != nil {
			fmt.Fprintf(&b, "\n        error: %v", res.Err)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Runner renders cases in parallel and evaluates their expectations.
// Compiled expect programs are cached by expression text; cases share
// expressions freely.
type Runner struct {
	renderer *preview.Renderer
	workers  int

	mu       sync.Mutex
	programs map[string]*vm.Program
}

// NewRunner builds a Runner. Workers at or below zero means NumCPU.
func NewRunner(renderer *preview.Renderer, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		renderer: renderer,
		workers:  workers,
		programs: make(map[string]*vm.Program),
	}
}

// Run executes every case and returns the report in input order.
func (r *Runner) Run(ctx context.Context, cases []Case) (Report, error) {
	results := make([]CaseResult, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, c := range cases {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = r.runCase(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return Report{Results: results}, nil
}

func (r *Runner) runCase(c Case) CaseResult {
	result, err := r.renderer.Render(preview.Request{
		Code:  c.Code,
		Files: c.Files,
		Theme: c.Theme,
	})
	if err != nil {
		return CaseResult{Name: c.Name, Status: StatusError, Err: fmt.Errorf("render: %w", err)}
	}

	env := resultEnv(result)

	var failures []string
	for _, expectation := range c.Expect {
		ok, err := r.evaluate(expectation, env)
		if err != nil {
			return CaseResult{
				Name:   c.Name,
				Status: StatusError,
				Err:    fmt.Errorf("expect %q: %w", expectation, err),
			}
		}
		if !ok {
			failures = append(failures, expectation)
		}
	}

	if len(failures) > 0 {
		return CaseResult{Name: c.Name, Status: StatusFail, Failures: failures}
	}
	return CaseResult{Name: c.Name, Status: StatusPass}
}

// resultEnv exposes the render result to expect expressions.
func resultEnv(result *preview.RenderResult) map[string]interface{} {
	return map[string]interface{}{
		"document":      result.Document,
		"entry_path":    result.EntryPath,
		"entry_name":    result.EntryName,
		"used_fallback": result.UsedFallback,
		"stubbed":       result.Stubbed,
		"icons":         result.Icons,
		"libraries":     result.Libraries,
	}
}

func (r *Runner) evaluate(expression string, env map[string]interface{}) (bool, error) {
	program, err := r.compile(expression, env)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("expression did not return a boolean")
	}
	return ok, nil
}

func (r *Runner) compile(expression string, env map[string]interface{}) (*vm.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if program, ok := r.programs[expression]; ok {
		return program, nil
	}
	program, err := expr.Compile(expression, exprOptions(env)...)
	if err != nil {
		return nil, err
	}
	r.programs[expression] = program
	return program, nil
}

// exprOptions adds string helpers next to the standard builtins.
func exprOptions(env map[string]interface{}) []expr.Option {
	return []expr.Option{
		expr.Env(env),
		expr.AsBool(),
		expr.Function("strContains", func(params ...interface{}) (interface{}, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("strContains expects 2 arguments")
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("strContains: first argument must be a string")
			}
			substr, ok := params[1].(string)
			if !ok {
				return nil, fmt.Errorf("strContains: second argument must be a string")
			}
			return strings.Contains(s, substr), nil
		}),
		expr.Function("strBefore", func(params ...interface{}) (interface{}, error) {
			if len(params) != 3 {
				return nil, fmt.Errorf("strBefore expects 3 arguments")
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("strBefore: first argument must be a string")
			}
			a, ok := params[1].(string)
			if !ok {
				return nil, fmt.Errorf("strBefore: second argument must be a string")
			}
			b, ok := params[2].(string)
			if !ok {
				return nil, fmt.Errorf("strBefore: third argument must be a string")
			}
			ai, bi := strings.Index(s, a), strings.Index(s, b)
			return ai >= 0 && bi >= 0 && ai < bi, nil
		}),
	}
}
