package registry

import (
	"bytes"
	stderrors "errors"
	"sort"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// scriptEntry is one script as written in a script file. Pointers tell
// absent fields from zero values so defaults can apply.
type scriptEntry struct {
	Uses   []string `toml:"uses" mapstructure:"uses"`
	Run    *string  `toml:"run" mapstructure:"run"`
	Stdout *bool    `toml:"stdout" mapstructure:"stdout"`
	Stderr *bool    `toml:"stderr" mapstructure:"stderr"`
	Cache  *bool    `toml:"cache" mapstructure:"cache"`
}

func (e scriptEntry) definition() types.ScriptDefinition {
	def := types.NewScript("")
	def.Uses = e.Uses
	if e.Run != nil {
		def.Run = *e.Run
	}
	if e.Stdout != nil {
		def.ShowStdout = *e.Stdout
	}
	if e.Stderr != nil {
		def.ShowStderr = *e.Stderr
	}
	if e.Cache != nil {
		def.Cacheable = *e.Cache
	}
	return def
}

// DecodeTOML reads a fae.toml document: one table per script
func DecodeTOML(data []byte, file string) (types.Registry, []Warning, error) {
	var entries map[string]scriptEntry
	var warnings []Warning

	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&entries)

	var strict *toml.StrictMissingError
	if stderrors.As(err, &strict) {
		for i := range strict.Errors {
			key := strict.Errors[i].Key()
			if len(key) < 2 {
				continue
			}
			line, _ := strict.Errors[i].Position()
			warnings = append(warnings, unknownField(file, key[0], key[len(key)-1], line))
		}

		entries = nil
		err = toml.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", file).
			WithDetail(errors.DetailPath, file)
	}

	reg := make(types.Registry, len(entries))
	for name, entry := range entries {
		reg[name] = entry.definition()
	}
	return reg, warnings, nil
}

// DecodeYAML reads a fae.yaml document: one mapping per script
func DecodeYAML(data []byte, file string) (types.Registry, []Warning, error) {
	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", file).
			WithDetail(errors.DetailPath, file)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := make(types.Registry, len(raw))
	var warnings []Warning
	for _, name := range names {
		var entry scriptEntry
		var md mapstructure.Metadata
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &entry,
			Metadata:         &md,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrInternal, "failed to create script decoder")
		}
		if err := decoder.Decode(raw[name]); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid script %q in %s", name, file).
				WithDetail(errors.DetailScript, name).
				WithDetail(errors.DetailPath, file)
		}

		sort.Strings(md.Unused)
		for _, field := range md.Unused {
			warnings = append(warnings, unknownField(file, name, field, 0))
		}
		reg[name] = entry.definition()
	}
	return reg, warnings, nil
}
