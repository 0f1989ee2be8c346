package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane-dev/glasspane/internal/document"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRender_TwoFileMerge(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Files: map[string]string{
			"src/Header.tsx": "export function Header() { return <h1>Title</h1> }",
			"src/App.tsx":    "import { Header } from './Header'\nexport default function App() { return <Header/> }",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "src/App.tsx", result.EntryPath)
	assert.Equal(t, "App", result.EntryName)
	assert.Empty(t, result.Stubbed, "locally declared Header must not be stubbed")

	headerAt := strings.Index(result.Document, "function Header()")
	appAt := strings.Index(result.Document, "function App()")
	require.GreaterOrEqual(t, headerAt, 0)
	require.GreaterOrEqual(t, appAt, 0)
	assert.Less(t, headerAt, appAt)
}

func TestRender_UnknownImportGetsStub(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Code: "import { MagicChart } from 'magic-charts'\nexport default function App() { return <MagicChart/> }",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"MagicChart"}, result.Stubbed)
	assert.Contains(t, result.Document, `const MagicChart = ({ children, ...props }) =>`)
}

func TestRender_NoUndeclaredReferences(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Code: `import { useState } from 'react'
import { Sun } from 'lucide-react'
import { motion } from 'framer-motion'
import { Widget, useWidget } from 'widget-kit'
export default function App() {
  const [n] = useState(0)
  const [w] = useWidget()
  return <motion.div><Sun/><Widget label={w}>{n}</Widget></motion.div>
}`,
	})
	require.NoError(t, err)

	// Every non-platform import resolves to a binding in the document.
	assert.Contains(t, result.Document, `const Sun = window.GlasspaneRuntime.icon("Sun");`)
	assert.Contains(t, result.Document, `const motion = window.GlasspaneRuntime["motion"];`)
	assert.Contains(t, result.Document, "const Widget = ")
	assert.Contains(t, result.Document, "const useWidget = ")
	assert.Equal(t, []string{"Sun"}, result.Icons)
	assert.Equal(t, []string{"motion"}, result.Libraries)
	assert.ElementsMatch(t, []string{"Widget", "useWidget"}, result.Stubbed)
}

func TestRender_FilesTakePrecedenceOverCode(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Code: "export default function FromCode() { return null }",
		Files: map[string]string{
			"src/App.tsx": "export default function App() { return null }",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "src/App.tsx", result.EntryPath)
	assert.False(t, result.UsedFallback)
}

func TestRender_EmptyRequestIsError(t *testing.T) {
	t.Parallel()

	_, err := newRenderer(t).Render(Request{})
	require.Error(t, err)
}

func TestRender_ThemeOverrideFlowsIntoDocument(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Code:  "export default function App() { return null }",
		Theme: &document.Theme{Primary: "#123456"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Document, "--gp-primary: #123456;")
}

func TestRender_SnapshotCSSIncludedStripped(t *testing.T) {
	t.Parallel()

	result, err := newRenderer(t).Render(Request{
		Files: map[string]string{
			"src/App.tsx":   "export default function App() { return null }",
			"src/index.css": "@tailwind base;\n.brand { color: teal; }",
		},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Document, ".brand { color: teal; }")
	assert.NotContains(t, result.Document, "@tailwind")
}

func TestRender_FreshIDPerPass(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	req := Request{Code: "export default function App() { return null }"}

	a, err := r.Render(req)
	require.NoError(t, err)
	b, err := r.Render(req)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Document, b.Document, "same input renders the same document")
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	ev, err := ParseEvent([]byte(`{"type":"preview-error","error":{"message":"boom","line":3}}`))
	require.NoError(t, err)
	assert.Equal(t, EventError, ev.Type)
	assert.Equal(t, "boom", ev.Error.Message)
	assert.Equal(t, 3, ev.Error.Line)

	ev, err = ParseEvent([]byte(`{"type":"preview-navigation","path":"/about"}`))
	require.NoError(t, err)
	assert.Equal(t, EventNavigation, ev.Type)
	assert.Equal(t, "/about", ev.Path)

	for _, bad := range []string{
		`{"type":"preview-error"}`,
		`{"type":"preview-navigation"}`,
		`{"type":"something-else"}`,
		`not json`,
	} {
		_, err := ParseEvent([]byte(bad))
		assert.Error(t, err, "input %s", bad)
	}
}
