package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFlagsValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, (&sourceFlags{}).validate())
	assert.Error(t, (&sourceFlags{file: "a.tsx", dir: "proj"}).validate())
	assert.NoError(t, (&sourceFlags{file: "a.tsx"}).validate())
	assert.NoError(t, (&sourceFlags{dir: "proj"}).validate())
	assert.NoError(t, (&sourceFlags{manifest: "project.yaml"}).validate())
}

func TestLoadSnapshotFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "App.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export default function App() { return null }"), 0o644))

	snap, err := loadSnapshot(sourceFlags{file: path})
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Fallback())
}

func TestLoadSnapshotFromDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "App.tsx"),
		[]byte("export default function App() { return null }"), 0o644))

	snap, err := loadSnapshot(sourceFlags{dir: dir})
	require.NoError(t, err)
	_, ok := snap.Get("src/App.tsx")
	assert.True(t, ok)
}

func TestWriteOutputAddsExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "preview")
	require.NoError(t, writeOutput(target, "<html></html>"))

	data, err := os.ReadFile(target + ".html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}
