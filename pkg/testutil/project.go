package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fae/pkg/paths"
)

// ProjectBuilder declares a project directory for a test
type ProjectBuilder struct {
	t     *testing.T
	dir   string
	built bool

	manifest map[string]string
	files    map[string]string
	bins     map[string]string
}

// NewProject starts a project in a fresh temporary directory
func NewProject(t *testing.T) *ProjectBuilder {
	t.Helper()
	return &ProjectBuilder{
		t:     t,
		dir:   t.TempDir(),
		files: make(map[string]string),
		bins:  make(map[string]string),
	}
}

// WithManifest adds a package.json with the given scripts
func (b *ProjectBuilder) WithManifest(scripts map[string]string) *ProjectBuilder {
	if scripts == nil {
		scripts = map[string]string{}
	}
	b.manifest = scripts
	return b
}

// WithScriptFile adds fae.toml with the given content
func (b *ProjectBuilder) WithScriptFile(content string) *ProjectBuilder {
	return b.WithFile("fae.toml", content)
}

// WithFile adds an arbitrary file relative to the project root
func (b *ProjectBuilder) WithFile(name, content string) *ProjectBuilder {
	b.files[name] = content
	return b
}

// WithBin adds an executable shell script to node_modules/.bin
func (b *ProjectBuilder) WithBin(name, body string) *ProjectBuilder {
	b.bins[name] = "#!/bin/sh\n" + body + "\n"
	return b
}

// Build writes the project and returns its directory. Calling it again
// returns the same directory.
func (b *ProjectBuilder) Build() string {
	b.t.Helper()
	if b.built {
		return b.dir
	}

	if b.manifest != nil {
		data, err := json.Marshal(map[string]interface{}{"scripts": b.manifest})
		if err != nil {
			b.t.Fatalf("Failed to encode manifest: %v", err)
		}
		CreateFile(b.t, b.dir, paths.ManifestFile, string(data), 0644)
	}
	for name, content := range b.files {
		CreateFile(b.t, b.dir, name, content, 0644)
	}
	for name, body := range b.bins {
		CreateFile(b.t, b.dir, filepath.Join(filepath.FromSlash(paths.DefaultBinDir), name), body, 0755)
	}

	b.built = true
	return b.dir
}

// Path joins rel onto the project directory
func (b *ProjectBuilder) Path(rel string) string {
	return filepath.Join(b.dir, rel)
}
