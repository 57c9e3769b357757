package core

import (
	"context"
	"io"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/arthur-debert/fae/pkg/orchestrator"
	"github.com/arthur-debert/fae/pkg/runner"
)

// RunOptions contains options for running one script
type RunOptions struct {
	Project *Project
	Script  string
	Args    []string

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Runner replaces the shell runner, mostly for tests
	Runner orchestrator.CommandRunner
}

// RunScript resolves opts.Script with a fresh execution cache. The first
// failure anywhere in the dependency tree ends the run and is returned.
// When ctx is canceled the error is INTERRUPTED.
func RunScript(ctx context.Context, opts RunOptions) error {
	logger := logging.GetLogger("core.run")
	done := logging.LogOperationStart(logger, "run "+opts.Script)
	defer done()

	if opts.Project == nil {
		return errors.New(errors.ErrInternal, "run needs a loaded project")
	}
	if opts.Script == "" {
		return errors.New(errors.ErrInvalidInput, "no script name given")
	}
	project := opts.Project

	cmdRunner := opts.Runner
	if cmdRunner == nil {
		cmdRunner = runner.New(runner.Options{
			Shell:  project.Settings.Shell,
			Dir:    project.Paths.ProjectRoot(),
			Stdin:  opts.Stdin,
			Stdout: opts.Stdout,
			Stderr: opts.Stderr,
		})
	}

	orch := orchestrator.New(orchestrator.Options{
		Registry: project.Registry,
		Env:      project.Env,
		Runner:   cmdRunner,
		Bins:     project.Paths,
	})

	cache := orchestrator.NewExecutionCache()
	err := orch.Resolve(ctx, opts.Script, opts.Args, cache)
	if err == nil {
		logger.Debug().Str("script", opts.Script).Int("claimed", cache.Len()).Msg("Run finished")
		return nil
	}

	if ctx.Err() != nil {
		logger.Debug().Err(err).Msg("Run interrupted")
		return errors.Wrapf(err, errors.ErrInterrupted, "run of script %s was interrupted", opts.Script).
			WithDetail(errors.DetailScript, opts.Script)
	}

	logger.Debug().Err(err).
		Str("script", opts.Script).
		Str("code", string(errors.GetErrorCode(err))).
		Msg("Run failed")
	return err
}
