package types_test

import (
	"testing"

	"github.com/arthur-debert/fae/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewScriptDefaults(t *testing.T) {
	def := types.NewScript("go test ./...")

	assert.Equal(t, "go test ./...", def.Run)
	assert.True(t, def.HasRun())
	assert.True(t, def.ShowStdout)
	assert.True(t, def.ShowStderr)
	assert.True(t, def.Cacheable)
	assert.Empty(t, def.Uses)
}

func TestHasRun(t *testing.T) {
	assert.False(t, types.ScriptDefinition{Uses: []string{"a"}}.HasRun())
}

func TestRegistryMergeReplacesWholeEntries(t *testing.T) {
	base := types.Registry{
		"build": types.NewScript("npm run build"),
		"lint":  types.NewScript("eslint ."),
	}
	override := types.Registry{
		"build": {Uses: []string{"lint"}, ShowStdout: false, ShowStderr: true, Cacheable: false},
	}

	base.Merge(override)

	build, ok := base.Lookup("build")
	assert.True(t, ok)
	assert.Equal(t, []string{"lint"}, build.Uses)
	assert.False(t, build.HasRun(), "fields of the replaced entry must not leak through")
	assert.False(t, build.Cacheable)

	_, ok = base.Lookup("lint")
	assert.True(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := types.Registry{"c": {}, "a": {}, "b": {}}
	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
	assert.Empty(t, types.Registry{}.Names())
}

func TestEnvOverridesApply(t *testing.T) {
	environ := []string{"HOME=/home/me", "PATH=/usr/bin", "EMPTY="}

	t.Run("no_overrides_returns_input", func(t *testing.T) {
		assert.Equal(t, environ, types.EnvOverrides(nil).Apply(environ))
	})

	t.Run("replaces_in_place_and_appends_new", func(t *testing.T) {
		env := types.EnvOverrides{
			"PATH":     "/proj/node_modules/.bin:/usr/bin",
			"NODE_ENV": "test",
			"A_FIRST":  "1",
		}

		got := env.Apply(environ)

		assert.Equal(t, []string{
			"HOME=/home/me",
			"PATH=/proj/node_modules/.bin:/usr/bin",
			"EMPTY=",
			"A_FIRST=1",
			"NODE_ENV=test",
		}, got)
	})

	t.Run("duplicate_keys_collapse", func(t *testing.T) {
		got := types.EnvOverrides{"X": "new"}.Apply([]string{"X=1", "X=2"})
		assert.Equal(t, []string{"X=new"}, got)
	})

	t.Run("key_ends_at_first_equals", func(t *testing.T) {
		got := types.EnvOverrides{"OPTS": "b", "BARE": "set"}.Apply([]string{"OPTS=a=1", "BARE", "OPTSX=c"})
		assert.Equal(t, []string{"OPTS=b", "BARE=set", "OPTSX=c"}, got)
	})
}
