// Package paths resolves the locations fae works with: the project root,
// the project-local executable directory and the files read from them.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fae/pkg/errors"
)

// Environment variable names
const (
	// EnvPath is the executable search path variable
	EnvPath = "PATH"
)

// Default directories and files
const (
	// DefaultBinDir is the project-local executable directory populated by
	// package managers
	DefaultBinDir = "node_modules/.bin"

	// ManifestFile is the package manifest whose scripts seed the registry
	ManifestFile = "package.json"
)

// Paths provides centralized path management for one fae invocation
type Paths interface {
	ProjectRoot() string
	ProjectPath(rel string) string
	BinDir() string
	LookupBin(name string) (string, bool)
	PathOverride(inherited string) string
}

type paths struct {
	// projectRoot is the directory scripts are resolved and run in
	projectRoot string

	// binDir is the absolute project-local executable directory
	binDir string
}

// New creates a Paths instance rooted at projectRoot. An empty projectRoot
// means the current working directory; an empty binDir means DefaultBinDir.
// A relative binDir is taken relative to the project root.
func New(projectRoot, binDir string) (Paths, error) {
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to get working directory")
		}
		projectRoot = cwd
	}

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to resolve project root %s", projectRoot).
			WithDetail(errors.DetailPath, projectRoot)
	}

	if binDir == "" {
		binDir = DefaultBinDir
	}
	if !filepath.IsAbs(binDir) {
		binDir = filepath.Join(root, filepath.FromSlash(binDir))
	}

	return &paths{
		projectRoot: root,
		binDir:      filepath.Clean(binDir),
	}, nil
}

func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// ProjectPath joins rel onto the project root unless it is already absolute
func (p *paths) ProjectPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.projectRoot, rel)
}

func (p *paths) BinDir() string {
	return p.binDir
}

// LookupBin reports whether name is an executable file directly inside the
// project-local executable directory, and returns its path if so.
func (p *paths) LookupBin(name string) (string, bool) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	candidate := filepath.Join(p.binDir, name)
	info, err := os.Stat(candidate)
	if err != nil {
		return "", false
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
		return "", false
	}
	return candidate, true
}

// PathOverride prepends the executable directory to an inherited search path
func (p *paths) PathOverride(inherited string) string {
	if inherited == "" {
		return p.binDir
	}
	return p.binDir + string(os.PathListSeparator) + inherited
}
