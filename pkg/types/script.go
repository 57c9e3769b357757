package types

import (
	"sort"
	"strings"
)

// ScriptDefinition describes one named script: the scripts it uses and the
// shell command it runs once they are satisfied.
type ScriptDefinition struct {
	// Uses lists dependency script names in declaration order.
	Uses []string

	// Run is the shell command template. Empty means the script only
	// groups its dependencies.
	Run string

	ShowStdout bool
	ShowStderr bool

	// Cacheable scripts run at most once per invocation.
	Cacheable bool
}

// NewScript returns a definition that runs the given command with every
// flag at its default.
func NewScript(run string) ScriptDefinition {
	return ScriptDefinition{
		Run:        run,
		ShowStdout: true,
		ShowStderr: true,
		Cacheable:  true,
	}
}

// HasRun reports whether the script has a command of its own.
func (s ScriptDefinition) HasRun() bool {
	return s.Run != ""
}

// Registry maps script names to their definitions. It is built before a
// run starts and only read while the run is in progress.
type Registry map[string]ScriptDefinition

// Lookup returns the definition for name.
func (r Registry) Lookup(name string) (ScriptDefinition, bool) {
	def, ok := r[name]
	return def, ok
}

// Merge copies every entry of other into r. Entries of other replace
// entries of r with the same name as a whole; fields are never combined.
func (r Registry) Merge(other Registry) {
	for name, def := range other {
		r[name] = def
	}
}

// Names returns the registered script names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnvOverrides holds environment variables applied on top of the inherited
// environment of every spawned command.
type EnvOverrides map[string]string

// Apply returns environ (in os.Environ form) with the overrides applied.
// Overridden variables keep their position; new ones are appended in key
// order.
func (e EnvOverrides) Apply(environ []string) []string {
	if len(e) == 0 {
		return environ
	}

	result := make([]string, 0, len(environ)+len(e))
	seen := make(map[string]bool, len(e))
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if val, ok := e[key]; ok {
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, key+"="+val)
			continue
		}
		result = append(result, kv)
	}

	keys := make([]string, 0, len(e))
	for key := range e {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, key+"="+e[key])
	}

	return result
}
