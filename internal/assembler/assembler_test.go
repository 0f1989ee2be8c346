package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane-dev/glasspane/internal/snapshot"
)

func mustSnapshot(t *testing.T, files map[string]string, fallback string) *snapshot.Snapshot {
	t.Helper()
	s, err := snapshot.New(files, fallback)
	require.NoError(t, err)
	return s
}

func TestAssemble_EntryPriorityOrder(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"App.tsx":     "export default function Outer() { return null }",
		"src/App.tsx": "export default function App() { return null }",
	}, "")

	merged := Assemble(snap)
	assert.Equal(t, "src/App.tsx", merged.EntryPath)
	assert.Equal(t, "App", merged.EntryName)
	assert.False(t, merged.UsedFallback)
}

func TestAssemble_Deterministic(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"src/App.jsx":    "export default function App() { return <Header/> }",
		"src/Header.jsx": "export function Header() { return null }",
		"src/Footer.jsx": "export function Footer() { return null }",
	}

	first := Assemble(mustSnapshot(t, files, ""))
	second := Assemble(mustSnapshot(t, files, ""))
	assert.Equal(t, first, second)
}

func TestAssemble_EntryLastLibrariesFirst(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"src/App.tsx":    "export default function App() { return <Header/> }",
		"src/Header.tsx": "export function Header() { return <h1>hi</h1> }",
	}, "")

	merged := Assemble(snap)
	headerAt := strings.Index(merged.Source, "function Header")
	appAt := strings.Index(merged.Source, "function App")
	require.GreaterOrEqual(t, headerAt, 0)
	require.GreaterOrEqual(t, appAt, 0)
	assert.Less(t, headerAt, appAt, "library file must precede entry")
	assert.Equal(t, []string{"src/Header.tsx"}, merged.Libraries)
}

func TestAssemble_LayoutPulledToFront(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"src/App.tsx":               "export default function App() { return null }",
		"src/components/Aside.tsx":  "export function Aside() { return null }",
		"src/components/Layout.tsx": "export function Layout() { return null }",
	}, "")

	merged := Assemble(snap)
	assert.Equal(t, []string{"src/components/Layout.tsx", "src/components/Aside.tsx"}, merged.Libraries)
}

func TestAssemble_RootExportFallbackResolution(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"src/widgets/Dashboard.tsx": "export default function Dashboard() { return null }",
		"src/util.ts":               "export const fmt = (x) => x",
	}, "")

	merged := Assemble(snap)
	assert.Equal(t, "src/widgets/Dashboard.tsx", merged.EntryPath)
	assert.Equal(t, "Dashboard", merged.EntryName)
}

func TestAssemble_RawFallback(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, nil, "export default function App() { return <p>hi</p> }")

	merged := Assemble(snap)
	assert.True(t, merged.UsedFallback)
	assert.Empty(t, merged.EntryPath)
	assert.Contains(t, merged.Source, "function App")
}

func TestAssemble_ExcludesInfrastructureAndStyles(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"src/App.tsx":    "export default function App() { return null }",
		"src/main.tsx":   "import React from 'react'\ncreateRoot(document.getElementById('root'))",
		"src/index.css":  "body { margin: 0 }",
		"tsconfig.json":  `{"compilerOptions":{}}`,
		"src/Button.tsx": "export const Button = () => null",
	}, "")

	merged := Assemble(snap)
	assert.Equal(t, []string{"src/Button.tsx"}, merged.Libraries)
	assert.NotContains(t, merged.Source, "createRoot(document")
}

func TestAssemble_BestGuessWhenNothingResolves(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, map[string]string{
		"src/Widget.tsx": "export function Widget() { return null }",
	}, "")

	merged := Assemble(snap)
	assert.Equal(t, "src/Widget.tsx", merged.EntryPath)
	assert.False(t, merged.UsedFallback)
	assert.Equal(t, "Widget", merged.EntryName)
}
