package orchestrator_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/orchestrator"
	"github.com/arthur-debert/fae/pkg/runner"
	"github.com/arthur-debert/fae/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeRunner records every command and optionally runs a per-script hook
type fakeRunner struct {
	mu    sync.Mutex
	calls []runner.Command
	hooks map[string]func(ctx context.Context) error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{hooks: make(map[string]func(ctx context.Context) error)}
}

func (f *fakeRunner) Run(ctx context.Context, c runner.Command) error {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	hook := f.hooks[c.Script]
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx)
	}
	return nil
}

func (f *fakeRunner) count(script string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Script == script {
			n++
		}
	}
	return n
}

func (f *fakeRunner) call(script string) (runner.Command, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Script == script {
			return c, true
		}
	}
	return runner.Command{}, false
}

// mockBins implements orchestrator.BinResolver
type mockBins struct {
	mock.Mock
}

func (m *mockBins) LookupBin(name string) (string, bool) {
	args := m.Called(name)
	return args.String(0), args.Bool(1)
}

func script(run string, uses ...string) types.ScriptDefinition {
	def := types.NewScript(run)
	def.Uses = uses
	return def
}

func newOrchestrator(reg types.Registry, r orchestrator.CommandRunner, bins orchestrator.BinResolver) *orchestrator.Orchestrator {
	logger := zerolog.Nop()
	opts := orchestrator.Options{
		Registry: reg,
		Env:      types.EnvOverrides{"PATH": "/proj/node_modules/.bin:/usr/bin"},
		Runner:   r,
		Logger:   &logger,
	}
	if bins != nil {
		opts.Bins = bins
	}
	return orchestrator.New(opts)
}

func TestResolveWithoutUsesRunsCommandDirectly(t *testing.T) {
	r := newFakeRunner()
	o := newOrchestrator(types.Registry{"greet": script("echo")}, r, nil)

	err := o.Resolve(context.Background(), "greet", []string{"hello world"}, orchestrator.NewExecutionCache())
	require.NoError(t, err)

	c, ok := r.call("greet")
	require.True(t, ok)
	assert.Equal(t, "echo", c.Template)
	assert.Equal(t, []string{"hello world"}, c.Args)
	assert.Equal(t, "echo 'hello world'", c.Line())
	assert.True(t, c.ShowStdout)
	assert.True(t, c.ShowStderr)
	assert.Equal(t, "/proj/node_modules/.bin:/usr/bin", c.Env["PATH"])
}

func TestResolvePassesVisibilityFlags(t *testing.T) {
	def := script("make")
	def.ShowStdout = false
	r := newFakeRunner()
	o := newOrchestrator(types.Registry{"build": def}, r, nil)

	require.NoError(t, o.Resolve(context.Background(), "build", nil, orchestrator.NewExecutionCache()))

	c, _ := r.call("build")
	assert.False(t, c.ShowStdout)
	assert.True(t, c.ShowStderr)
}

func TestCacheableDependencyRunsOnce(t *testing.T) {
	reg := types.Registry{
		"a": script("true", "b", "c"),
		"b": script("true", "c"),
		"c": script("true"),
	}
	r := newFakeRunner()
	o := newOrchestrator(reg, r, nil)
	cache := orchestrator.NewExecutionCache()

	require.NoError(t, o.Resolve(context.Background(), "a", nil, cache))

	assert.Equal(t, 1, r.count("a"))
	assert.Equal(t, 1, r.count("b"))
	assert.Equal(t, 1, r.count("c"))
	assert.Equal(t, 3, cache.Len())
	_, first := cache.Claim("c")
	assert.False(t, first)
}

func TestNonCacheableDependencyRunsPerReference(t *testing.T) {
	c := script("true")
	c.Cacheable = false
	reg := types.Registry{
		"root": script("", "a", "b"),
		"a":    script("true", "c"),
		"b":    script("true", "c"),
		"c":    c,
	}
	r := newFakeRunner()
	o := newOrchestrator(reg, r, nil)
	cache := orchestrator.NewExecutionCache()

	require.NoError(t, o.Resolve(context.Background(), "root", nil, cache))

	assert.Equal(t, 2, r.count("c"))
	_, first := cache.Claim("c")
	assert.True(t, first, "non-cacheable scripts are never claimed")
}

func TestDependenciesGetNoArguments(t *testing.T) {
	reg := types.Registry{
		"test":  script("jest", "build"),
		"build": script("tsc"),
	}
	r := newFakeRunner()
	o := newOrchestrator(reg, r, nil)

	require.NoError(t, o.Resolve(context.Background(), "test", []string{"--watch"}, orchestrator.NewExecutionCache()))

	build, _ := r.call("build")
	assert.Empty(t, build.Args)
	test, _ := r.call("test")
	assert.Equal(t, []string{"--watch"}, test.Args)
}

func TestScriptWithoutRunOnlyResolvesDependencies(t *testing.T) {
	reg := types.Registry{
		"ci":   script("", "lint", "test"),
		"lint": script("eslint ."),
		"test": script("jest"),
	}
	r := newFakeRunner()
	o := newOrchestrator(reg, r, nil)

	require.NoError(t, o.Resolve(context.Background(), "ci", []string{"ignored"}, orchestrator.NewExecutionCache()))

	assert.Equal(t, 0, r.count("ci"))
	assert.Equal(t, 1, r.count("lint"))
	assert.Equal(t, 1, r.count("test"))
}

func TestOwnCommandWaitsForDependencies(t *testing.T) {
	reg := types.Registry{
		"app":  script("true", "slow", "fast"),
		"slow": script("sleep"),
		"fast": script("true"),
	}
	r := newFakeRunner()

	var mu sync.Mutex
	var slowDone time.Time
	var appStart time.Time
	r.hooks["slow"] = func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		slowDone = time.Now()
		mu.Unlock()
		return nil
	}
	r.hooks["app"] = func(ctx context.Context) error {
		mu.Lock()
		appStart = time.Now()
		mu.Unlock()
		return nil
	}

	o := newOrchestrator(reg, r, nil)
	require.NoError(t, o.Resolve(context.Background(), "app", nil, orchestrator.NewExecutionCache()))

	assert.False(t, appStart.Before(slowDone), "app started before its dependency finished")
}

func TestSharedDependencyFinishesBeforeSecondDependent(t *testing.T) {
	// a uses b and c concurrently, b uses c too. Whichever branch claims
	// c second must still wait for c to finish before b runs.
	reg := types.Registry{
		"a": script("true", "b", "c"),
		"b": script("true", "c"),
		"c": script("sleep"),
	}
	r := newFakeRunner()

	var mu sync.Mutex
	var cDone, bStart time.Time
	r.hooks["c"] = func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		cDone = time.Now()
		mu.Unlock()
		return nil
	}
	r.hooks["b"] = func(ctx context.Context) error {
		mu.Lock()
		bStart = time.Now()
		mu.Unlock()
		return nil
	}

	o := newOrchestrator(reg, r, nil)
	require.NoError(t, o.Resolve(context.Background(), "a", nil, orchestrator.NewExecutionCache()))

	assert.Equal(t, 1, r.count("c"))
	assert.False(t, bStart.Before(cDone), "b started before shared dependency c finished")
}

func TestDependenciesRunConcurrently(t *testing.T) {
	reg := types.Registry{
		"all": script("", "one", "two"),
		"one": script("true"),
		"two": script("true"),
	}
	r := newFakeRunner()

	// Each hook waits for the other one to start; sequential execution
	// would time out in the first.
	var started sync.WaitGroup
	started.Add(2)
	barrier := func(ctx context.Context) error {
		started.Done()
		ready := make(chan struct{})
		go func() {
			started.Wait()
			close(ready)
		}()
		select {
		case <-ready:
			return nil
		case <-time.After(2 * time.Second):
			return stderrors.New("dependencies did not run concurrently")
		}
	}
	r.hooks["one"] = barrier
	r.hooks["two"] = barrier

	o := newOrchestrator(reg, r, nil)
	require.NoError(t, o.Resolve(context.Background(), "all", nil, orchestrator.NewExecutionCache()))
}

func TestDependencyFailureAbortsRun(t *testing.T) {
	reg := types.Registry{
		"deploy": script("rsync", "build"),
		"build":  script("exit 2"),
	}
	r := newFakeRunner()
	failure := errors.New(errors.ErrCommandNonZeroExit, "command exit 2 from script build failed with exit code 2").
		WithDetail(errors.DetailExitCode, 2)
	r.hooks["build"] = func(ctx context.Context) error { return failure }

	o := newOrchestrator(reg, r, nil)
	err := o.Resolve(context.Background(), "deploy", nil, orchestrator.NewExecutionCache())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNonZeroExit))
	assert.Equal(t, 2, errors.ExitCode(err))
	assert.Equal(t, 0, r.count("deploy"), "dependent must not run after a failed dependency")
}

func TestFailureCancelsRunningSiblings(t *testing.T) {
	reg := types.Registry{
		"all":  script("true", "fail", "hang"),
		"fail": script("false"),
		"hang": script("sleep 60"),
	}
	r := newFakeRunner()
	r.hooks["fail"] = func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		return errors.New(errors.ErrCommandNonZeroExit, "boom")
	}
	r.hooks["hang"] = func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return errors.New(errors.ErrCommandSignal, "killed")
		case <-time.After(10 * time.Second):
			return nil
		}
	}

	o := newOrchestrator(reg, r, nil)
	start := time.Now()
	err := o.Resolve(context.Background(), "all", nil, orchestrator.NewExecutionCache())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNonZeroExit), "first failure wins, got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 0, r.count("all"))
}

func TestWaiterSharesClaimantFailure(t *testing.T) {
	reg := types.Registry{
		"a": script("true", "b", "c"),
		"b": script("true", "c"),
		"c": script("false"),
	}
	r := newFakeRunner()
	r.hooks["c"] = func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		return errors.New(errors.ErrCommandNonZeroExit, "c failed")
	}

	o := newOrchestrator(reg, r, nil)
	err := o.Resolve(context.Background(), "a", nil, orchestrator.NewExecutionCache())

	require.Error(t, err)
	assert.Equal(t, 1, r.count("c"))
	assert.Equal(t, 0, r.count("b"))
	assert.Equal(t, 0, r.count("a"))
}

func TestScriptNotFound(t *testing.T) {
	reg := types.Registry{
		"build": script("tsc"),
		"test":  script("jest"),
	}
	r := newFakeRunner()
	bins := &mockBins{}
	bins.On("LookupBin", "tset").Return("", false)

	o := newOrchestrator(reg, r, bins)
	err := o.Resolve(context.Background(), "tset", nil, orchestrator.NewExecutionCache())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound))
	assert.Contains(t, err.Error(), `could not find script "tset"`)
	assert.Contains(t, err.Error(), "did you mean test?")
	assert.Equal(t, []string{"test"}, errors.GetErrorDetails(err)[errors.DetailSuggestions])
	bins.AssertExpectations(t)
}

func TestMissingDependencyFails(t *testing.T) {
	reg := types.Registry{"build": script("tsc", "generate")}
	r := newFakeRunner()

	o := newOrchestrator(reg, r, nil)
	err := o.Resolve(context.Background(), "build", nil, orchestrator.NewExecutionCache())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound))
	assert.Equal(t, "generate", errors.GetErrorDetails(err)[errors.DetailScript])
	assert.Equal(t, 0, r.count("build"))
}

func TestLocalExecutableFallback(t *testing.T) {
	r := newFakeRunner()
	bins := &mockBins{}
	bins.On("LookupBin", "eslint").Return("/proj/node_modules/.bin/eslint", true)

	o := newOrchestrator(types.Registry{}, r, bins)
	cache := orchestrator.NewExecutionCache()
	err := o.Resolve(context.Background(), "eslint", []string{"--fix", "src/a b.js"}, cache)

	require.NoError(t, err)
	c, ok := r.call("eslint")
	require.True(t, ok)
	assert.Equal(t, "/proj/node_modules/.bin/eslint", c.Template)
	assert.Equal(t, "/proj/node_modules/.bin/eslint --fix 'src/a b.js'", c.Line())
	assert.True(t, c.ShowStdout)
	assert.True(t, c.ShowStderr)
	assert.Equal(t, 0, cache.Len(), "local executables bypass the cache")
	bins.AssertExpectations(t)
}

func TestLocalExecutableIsNotCached(t *testing.T) {
	reg := types.Registry{"lint": script("", "eslint", "eslint")}
	r := newFakeRunner()
	bins := &mockBins{}
	bins.On("LookupBin", "eslint").Return("/bin/eslint", true)

	o := newOrchestrator(reg, r, bins)
	require.NoError(t, o.Resolve(context.Background(), "lint", nil, orchestrator.NewExecutionCache()))

	assert.Equal(t, 2, r.count("eslint"))
}

func TestRegistryWinsOverLocalExecutable(t *testing.T) {
	r := newFakeRunner()
	bins := &mockBins{}

	o := newOrchestrator(types.Registry{"eslint": script("eslint --cache .")}, r, bins)
	require.NoError(t, o.Resolve(context.Background(), "eslint", nil, orchestrator.NewExecutionCache()))

	c, _ := r.call("eslint")
	assert.Equal(t, "eslint --cache .", c.Template)
	bins.AssertNotCalled(t, "LookupBin", mock.Anything)
}

func TestCanceledContextStopsWaiters(t *testing.T) {
	cache := orchestrator.NewExecutionCache()
	claim, first := cache.Claim("c")
	require.True(t, first)

	reg := types.Registry{"c": script("true")}
	o := newOrchestrator(reg, newFakeRunner(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Resolve(ctx, "c", nil, cache)
	assert.ErrorIs(t, err, context.Canceled)

	claim.Finish(nil)
}

func TestResolveRejectsCycleBeforeRunning(t *testing.T) {
	reg := types.Registry{
		"a": script("echo a", "b", "c"),
		"b": script("echo b", "a"),
		"c": script("echo c"),
	}
	r := newFakeRunner()
	o := newOrchestrator(reg, r, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := o.Resolve(ctx, "a", nil, orchestrator.NewExecutionCache())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDependencyCycle), "got %v", err)
	assert.Equal(t, 0, r.count("c"))
	assert.NoError(t, ctx.Err())
}
