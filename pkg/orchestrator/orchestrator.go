package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/arthur-debert/fae/pkg/runner"
	"github.com/arthur-debert/fae/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CommandRunner runs one script command to completion
type CommandRunner interface {
	Run(ctx context.Context, c runner.Command) error
}

// BinResolver finds project-local executables by name
type BinResolver interface {
	LookupBin(name string) (string, bool)
}

// Options contains configuration for the orchestrator
type Options struct {
	Registry types.Registry
	Env      types.EnvOverrides
	Runner   CommandRunner

	// Bins is consulted for names missing from the registry. Nil disables
	// the fallback.
	Bins BinResolver

	// Logger defaults to the "orchestrator" component logger
	Logger *zerolog.Logger
}

// Orchestrator resolves scripts against one registry
type Orchestrator struct {
	registry types.Registry
	env      types.EnvOverrides
	runner   CommandRunner
	bins     BinResolver
	logger   zerolog.Logger
}

// New creates a new orchestrator instance
func New(opts Options) *Orchestrator {
	logger := logging.GetLogger("orchestrator")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	registry := opts.Registry
	if registry == nil {
		registry = types.Registry{}
	}

	return &Orchestrator{
		registry: registry,
		env:      opts.Env,
		runner:   opts.Runner,
		bins:     opts.Bins,
		logger:   logger,
	}
}

// Resolve satisfies the named script: its dependencies first, all at
// once, then its own command with args. A dependency cycle reachable from
// name is rejected before anything runs. cache must be shared by every
// Resolve call of one run.
func (o *Orchestrator) Resolve(ctx context.Context, name string, args []string, cache *ExecutionCache) error {
	if err := CheckCycles(o.registry, name); err != nil {
		return err
	}
	return o.resolve(ctx, name, args, cache)
}

func (o *Orchestrator) resolve(ctx context.Context, name string, args []string, cache *ExecutionCache) error {
	def, ok := o.registry.Lookup(name)
	if !ok {
		return o.resolveExternal(ctx, name, args)
	}

	if !def.Cacheable {
		return o.resolveDefinition(ctx, name, def, args, cache)
	}

	claim, first := cache.Claim(name)
	if !first {
		o.logger.Debug().Str("script", name).Msg("Script already claimed, waiting for it")
		return claim.Wait(ctx)
	}

	err := o.resolveDefinition(ctx, name, def, args, cache)
	claim.Finish(err)
	return err
}

// resolveExternal runs a project-local executable named like the script.
// It bypasses the cache and has no dependencies.
func (o *Orchestrator) resolveExternal(ctx context.Context, name string, args []string) error {
	if o.bins != nil {
		if path, found := o.bins.LookupBin(name); found {
			o.logger.Debug().Str("script", name).Str("path", path).Msg("Running local executable")
			return o.runner.Run(ctx, runner.Command{
				Script:     name,
				Template:   runner.QuoteArg(path),
				Args:       args,
				Env:        o.env,
				ShowStdout: true,
				ShowStderr: true,
			})
		}
	}
	return o.notFound(name)
}

func (o *Orchestrator) resolveDefinition(ctx context.Context, name string, def types.ScriptDefinition, args []string, cache *ExecutionCache) error {
	if len(def.Uses) > 0 {
		o.logger.Debug().Str("script", name).Strs("uses", def.Uses).Msg("Resolving dependencies")

		group, groupCtx := errgroup.WithContext(ctx)
		for _, dep := range def.Uses {
			group.Go(func() error {
				return o.resolve(groupCtx, dep, nil, cache)
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	}

	if !def.HasRun() {
		return nil
	}

	return o.runner.Run(ctx, runner.Command{
		Script:     name,
		Template:   def.Run,
		Args:       args,
		Env:        o.env,
		ShowStdout: def.ShowStdout,
		ShowStderr: def.ShowStderr,
	})
}

func (o *Orchestrator) notFound(name string) error {
	msg := fmt.Sprintf("could not find script %q in config file", name)
	suggestions := suggest(name, o.registry.Names())
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}

	return errors.New(errors.ErrScriptNotFound, msg).
		WithDetail(errors.DetailScript, name).
		WithDetail(errors.DetailSuggestions, suggestions)
}
