package registry

import (
	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/types"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
)

// LoadManifest reads the "scripts" object of a package.json style
// manifest. Each entry becomes a run-only script with default flags.
// The document is parsed without a koanf instance so that script names
// containing dots stay whole.
func LoadManifest(path string) (types.Registry, error) {
	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	doc, err := json.Parser().Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail(errors.DetailPath, path)
	}

	reg := types.Registry{}
	rawScripts, ok := doc["scripts"]
	if !ok || rawScripts == nil {
		return reg, nil
	}

	scripts, ok := rawScripts.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigParse, "%s: \"scripts\" must be an object", path).
			WithDetail(errors.DetailPath, path)
	}

	for name, raw := range scripts {
		run, ok := raw.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "%s: script %q must be a string", path, name).
				WithDetail(errors.DetailPath, path).
				WithDetail(errors.DetailScript, name)
		}
		reg[name] = types.NewScript(run)
	}
	return reg, nil
}
