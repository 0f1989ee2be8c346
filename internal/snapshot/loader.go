package snapshot

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed manifest_schema.json
var manifestSchema string

// sourceExtensions are file extensions worth carrying into a snapshot when
// loading from a directory. Everything else is build noise.
var sourceExtensions = map[string]bool{
	".jsx":  true,
	".tsx":  true,
	".js":   true,
	".ts":   true,
	".css":  true,
	".html": true,
	".json": true,
	".svg":  true,
}

// skipDirs are directories never descended into when loading from disk.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// manifest is the on-disk YAML shape of a project snapshot.
type manifest struct {
	Name     string            `yaml:"name"`
	Fallback string            `yaml:"fallback"`
	Files    map[string]string `yaml:"files"`
}

// LoadDir reads every recognized source file under dir into a Snapshot.
func LoadDir(dir string) (*Snapshot, error) {
	// Security: os.OpenRoot prevents symlinks under dir from escaping it.
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	files := make(map[string]string)
	err = fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		content, err := fs.ReadFile(root.FS(), path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files[filepath.ToSlash(path)] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshot directory: %w", err)
	}

	return New(files, "")
}

// LoadManifest loads a snapshot from a YAML manifest file.
func LoadManifest(path string) (*Snapshot, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return LoadManifestFromReader(file)
}

// LoadManifestFromReader loads a snapshot manifest from an io.Reader.
// The manifest is schema-validated before decoding into the typed shape.
func LoadManifestFromReader(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := validateManifest(data); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}

	var m manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to decode manifest YAML: %w", err)
	}

	return New(m.Files, m.Fallback)
}

// validateManifest checks the raw manifest document against the embedded
// JSON Schema.
func validateManifest(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not valid YAML: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.json", strings.NewReader(manifestSchema)); err != nil {
		return fmt.Errorf("loading manifest schema: %w", err)
	}
	schema, err := compiler.Compile("manifest.json")
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}
