package core

import (
	"os"

	"github.com/arthur-debert/fae/pkg/config"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/arthur-debert/fae/pkg/paths"
	"github.com/arthur-debert/fae/pkg/registry"
	"github.com/arthur-debert/fae/pkg/types"
)

// Project is everything a run needs to know about the project directory
type Project struct {
	Settings *config.Settings
	Paths    paths.Paths
	Registry types.Registry

	// Env is applied to every command of the run
	Env types.EnvOverrides

	ManifestPath string
	ConfigPath   string
	Warnings     []registry.Warning
}

// LoadProject resolves the project directory and reads its script
// sources. When a manifest exists, the project-local executable directory
// is put in front of PATH for every command.
func LoadProject(settings *config.Settings) (*Project, error) {
	logger := logging.GetLogger("core.project")

	p, err := paths.New(settings.Dir, settings.BinDir)
	if err != nil {
		return nil, err
	}

	loaded, err := registry.Load(registry.Options{
		Dir:          p.ProjectRoot(),
		ManifestFile: settings.ManifestFile,
		ConfigFiles:  settings.ConfigFiles,
		Locate:       p.ProjectPath,
	})
	if err != nil {
		return nil, err
	}

	env := types.EnvOverrides{}
	if loaded.HasManifest() {
		env[paths.EnvPath] = p.PathOverride(os.Getenv(paths.EnvPath))
	}

	logger.Debug().
		Str("root", p.ProjectRoot()).
		Str("manifest", loaded.ManifestPath).
		Str("config", loaded.ConfigPath).
		Int("scripts", len(loaded.Registry)).
		Msg("Project loaded")

	return &Project{
		Settings:     settings,
		Paths:        p,
		Registry:     loaded.Registry,
		Env:          env,
		ManifestPath: loaded.ManifestPath,
		ConfigPath:   loaded.ConfigPath,
		Warnings:     loaded.Warnings,
	}, nil
}

// ScriptInfo describes one registered script for listings
type ScriptInfo struct {
	Name string
	Run  string
	Uses []string
}

// Scripts lists the registered scripts in name order
func (p *Project) Scripts() []ScriptInfo {
	names := p.Registry.Names()
	infos := make([]ScriptInfo, 0, len(names))
	for _, name := range names {
		def := p.Registry[name]
		infos = append(infos, ScriptInfo{Name: name, Run: def.Run, Uses: def.Uses})
	}
	return infos
}
