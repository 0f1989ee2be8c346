package regress

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane-dev/glasspane/internal/preview"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	renderer, err := preview.NewRenderer()
	require.NoError(t, err)
	return NewRunner(renderer, 4)
}

func writeTestFile(t *testing.T, dir, name, content string) error {
	t.Helper()
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}

func TestSuitePasses(t *testing.T) {
	t.Parallel()

	cases, err := LoadCases(filepath.Join("testdata", "cases"))
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	report, err := newRunner(t).Run(context.Background(), cases)
	require.NoError(t, err)
	assert.True(t, report.Passed(), "suite report:\n%s", report.Summary())
	assert.Len(t, report.Results, len(cases))
}

func TestLoadCases_RejectsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCase := func(name, content string) {
		require.NoError(t, writeTestFile(t, dir, name, content))
	}

	writeCase("bad.yaml", "name: no-input\nexpect:\n  - used_fallback\n")
	_, err := LoadCases(dir)
	assert.ErrorContains(t, err, "neither code nor allFiles")
}

func TestLoadCases_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, writeTestFile(t, dir, "typo.yaml",
		"name: typo\ncode: x\nexpectations:\n  - used_fallback\n"))

	_, err := LoadCases(dir)
	assert.Error(t, err)
}

func TestLoadCases_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, writeTestFile(t, dir, "a.yaml", "name: same\ncode: x\nexpect:\n  - used_fallback\n"))
	require.NoError(t, writeTestFile(t, dir, "b.yaml", "name: same\ncode: x\nexpect:\n  - used_fallback\n"))

	_, err := LoadCases(dir)
	assert.ErrorContains(t, err, "duplicate case name")
}

func TestRun_FailingExpectationReported(t *testing.T) {
	t.Parallel()

	report, err := newRunner(t).Run(context.Background(), []Case{{
		Name:   "wrong-entry",
		Files:  map[string]string{"src/App.tsx": "export default function App() { return null }"},
		Expect: []string{`entry_name == "NotApp"`, `entry_path == "src/App.tsx"`},
	}})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, StatusFail, res.Status)
	assert.Equal(t, []string{`entry_name == "NotApp"`}, res.Failures)
	assert.False(t, report.Passed())
	assert.Contains(t, report.Summary(), "wrong-entry")
}

func TestRun_BadExpressionIsError(t *testing.T) {
	t.Parallel()

	report, err := newRunner(t).Run(context.Background(), []Case{{
		Name:   "broken-expression",
		Code:   "export default function App() { return null }",
		Expect: []string{"no_such_variable == 1"},
	}})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusError, report.Results[0].Status)
	assert.Error(t, report.Results[0].Err)
}

func TestRun_BlankCodeStillRenders(t *testing.T) {
	t.Parallel()

	report, err := newRunner(t).Run(context.Background(), []Case{{
		Name:   "empty",
		Code:   " ",
		Expect: []string{"used_fallback"},
	}})
	require.NoError(t, err)
	// A blank-but-present code string still renders via the fallback.
	assert.Equal(t, StatusPass, report.Results[0].Status)
}

func TestCompileCache(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	env := map[string]interface{}{"used_fallback": true}

	first, err := r.compile("used_fallback", env)
	require.NoError(t, err)
	second, err := r.compile("used_fallback", env)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
