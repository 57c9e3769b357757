package registry

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/arthur-debert/fae/pkg/types"
)

// Options names the sources Load reads
type Options struct {
	// Dir is the project directory the file names are relative to
	Dir string

	// ManifestFile is read when it exists. Empty disables it.
	ManifestFile string

	// ConfigFiles are candidate script files; the first existing one is
	// read
	ConfigFiles []string

	// Locate turns a file name into the path to read. Defaults to joining
	// the name onto Dir.
	Locate func(name string) string
}

func (o Options) locate(name string) string {
	if o.Locate != nil {
		return o.Locate(name)
	}
	return filepath.Join(o.Dir, name)
}

// Result is everything Load found
type Result struct {
	Registry types.Registry

	// ManifestPath is the manifest that was read, or empty
	ManifestPath string

	// ConfigPath is the script file that was read, or empty
	ConfigPath string

	Warnings []Warning
}

// HasManifest reports whether a manifest was found
func (r *Result) HasManifest() bool {
	return r.ManifestPath != ""
}

// Load builds the registry from the manifest and the first script file
// found. Missing sources are not errors; unreadable or malformed ones
// are.
func Load(opts Options) (*Result, error) {
	logger := logging.GetLogger("registry")
	result := &Result{Registry: types.Registry{}}

	if opts.ManifestFile != "" {
		path := opts.locate(opts.ManifestFile)
		exists, err := fileExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			manifest, err := LoadManifest(path)
			if err != nil {
				return nil, err
			}
			result.Registry.Merge(manifest)
			result.ManifestPath = path
			logger.Debug().Str("path", path).Int("scripts", len(manifest)).Msg("Loaded manifest scripts")
		}
	}

	for _, name := range opts.ConfigFiles {
		path := opts.locate(name)
		exists, err := fileExists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		scripts, warnings, err := LoadScriptFile(path)
		if err != nil {
			return nil, err
		}
		result.Registry.Merge(scripts)
		result.ConfigPath = path
		result.Warnings = warnings
		logger.Debug().Str("path", path).Int("scripts", len(scripts)).Int("warnings", len(warnings)).Msg("Loaded script file")
		break
	}

	return result, nil
}

// LoadScriptFile decodes one script file with the decoder registered for
// its extension
func LoadScriptFile(path string) (types.Registry, []Warning, error) {
	decode, ok := DecoderFor(path)
	if !ok {
		return nil, nil, errors.Newf(errors.ErrConfigParse, "unsupported script file format: %s", path).
			WithDetail(errors.DetailPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	return decode(data, filepath.Base(path))
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path).
			WithDetail(errors.DetailPath, path)
	}
	if info.IsDir() {
		return false, nil
	}
	return true, nil
}
