package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// EnvPrefix marks environment variables that override settings
const EnvPrefix = "FAE_"

// Settings holds the resolved runtime settings for one invocation
type Settings struct {
	Shell        string   `koanf:"shell"`
	BinDir       string   `koanf:"bin_dir"`
	ConfigFiles  []string `koanf:"config_files"`
	ManifestFile string   `koanf:"manifest_file"`
	Dir          string   `koanf:"dir"`
}

// flagKeys maps command line flag names to setting keys. Flags not listed
// here are not settings.
var flagKeys = map[string]string{
	"shell":    "shell",
	"bin-dir":  "bin_dir",
	"config":   "config_files",
	"manifest": "manifest_file",
	"dir":      "dir",
}

// LoadOptions controls which layers Load applies on top of the defaults
type LoadOptions struct {
	// Flags, when set, contributes every flag the user changed
	Flags *pflag.FlagSet

	// Overrides are applied last, keyed like the settings file
	Overrides map[string]interface{}

	// SkipEnv ignores FAE_* environment variables
	SkipEnv bool
}

// Load builds Settings from the embedded defaults, the environment and
// the given flags
func Load(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultSettings), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
		}
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from flags")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply settings overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate rejects settings no run can use
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Shell) == "" {
		return errors.New(errors.ErrConfigParse, "shell setting must not be empty")
	}
	if strings.TrimSpace(s.BinDir) == "" {
		return errors.New(errors.ErrConfigParse, "bin_dir setting must not be empty")
	}
	return nil
}

// envKey turns FAE_BIN_DIR into bin_dir
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// trimSliceHookFunc drops blanks around comma separated entries, so
// FAE_CONFIG_FILES="fae.toml, ci.toml" reads as two file names
func trimSliceHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}
