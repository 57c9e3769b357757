// Package config loads fae's runtime settings.
//
// Settings are layered with koanf, later layers overriding earlier ones:
//
//   - embedded/defaults.toml, compiled into the binary
//   - FAE_* environment variables (FAE_BIN_DIR sets bin_dir)
//   - command line flags the user actually set
//
// Script definitions are not settings; see pkg/registry.
package config
