package runner

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/arthur-debert/fae/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultShell is the shell commands are handed to
const DefaultShell = "sh"

// DefaultWaitDelay bounds how long a killed command may hold its output
// pipes open through processes it started
const DefaultWaitDelay = 2 * time.Second

// Command is one script command ready to be run
type Command struct {
	// Script is the name of the script the command belongs to
	Script string

	// Template is the command text before arguments are appended
	Template string

	// Args are appended to the template, quoted
	Args []string

	Env types.EnvOverrides

	ShowStdout bool
	ShowStderr bool
}

// Line returns the full shell command line
func (c Command) Line() string {
	return CommandLine(c.Template, c.Args)
}

// Options contains configuration for the runner
type Options struct {
	// Shell runs the command line with -c. Defaults to DefaultShell.
	Shell string

	// Dir is the working directory of every command. Empty means the
	// current directory.
	Dir string

	// Stdin, Stdout and Stderr default to the process streams. Streams
	// that are not files are shared by concurrent commands through a lock.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// WaitDelay defaults to DefaultWaitDelay
	WaitDelay time.Duration

	// Environ returns the inherited environment. Defaults to os.Environ.
	Environ func() []string

	// Logger defaults to the "runner" component logger
	Logger *zerolog.Logger
}

// Runner spawns and supervises script commands
type Runner struct {
	shell     string
	dir       string
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	waitDelay time.Duration
	environ   func() []string
	logger    zerolog.Logger
}

// New creates a new runner instance
func New(opts Options) *Runner {
	logger := logging.GetLogger("runner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	r := &Runner{
		shell:     opts.Shell,
		dir:       opts.Dir,
		stdin:     opts.Stdin,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		waitDelay: opts.WaitDelay,
		environ:   opts.Environ,
		logger:    logger,
	}
	if r.shell == "" {
		r.shell = DefaultShell
	}
	if r.stdin == nil {
		r.stdin = os.Stdin
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	if r.waitDelay <= 0 {
		r.waitDelay = DefaultWaitDelay
	}
	if r.environ == nil {
		r.environ = os.Environ
	}

	// stdout and stderr may be the same writer, so they share one lock
	var outMu sync.Mutex
	r.stdin = syncReader(r.stdin)
	r.stdout = syncWriter(r.stdout, &outMu)
	r.stderr = syncWriter(r.stderr, &outMu)
	return r
}

// Run executes the command and waits for it to finish. It returns nil only
// when the command exits with status zero. The subprocess is killed when
// ctx is canceled.
func (r *Runner) Run(ctx context.Context, c Command) error {
	line := c.Line()
	logging.LogCommand(r.logger, c.Script, line, c.Args)

	cmd := exec.CommandContext(ctx, r.shell, "-c", line)
	cmd.Dir = r.dir
	cmd.WaitDelay = r.waitDelay
	cmd.Env = c.Env.Apply(r.environ())
	cmd.Stdin = r.stdin
	if c.ShowStdout {
		cmd.Stdout = r.stdout
	}
	if c.ShowStderr {
		cmd.Stderr = r.stderr
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, errors.ErrCommandSpawn,
			"failed to create command %s from script %s", line, c.Script).
			WithDetails(commandDetails(c.Script, line))
	}

	err := cmd.Wait()
	if err == nil {
		r.logger.Debug().
			Str("script", c.Script).
			Dur("duration", time.Since(start)).
			Msg("Command finished")
		return nil
	}

	return r.waitError(c.Script, line, err)
}

// waitError classifies an error returned by Wait
func (r *Runner) waitError(script, line string, err error) error {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return errors.Wrapf(err, errors.ErrCommandWait,
			"failed to wait for command %s from script %s", line, script).
			WithDetails(commandDetails(script, line))
	}

	code := exitErr.ExitCode()
	if code == -1 {
		r.logger.Debug().Str("script", script).Str("state", exitErr.String()).Msg("Command terminated by signal")
		return errors.Wrapf(err, errors.ErrCommandSignal,
			"failed to get exit code from command %s from script %s, it was terminated by a signal", line, script).
			WithDetails(commandDetails(script, line))
	}

	r.logger.Debug().Str("script", script).Int("exit_code", code).Msg("Command failed")
	return errors.Newf(errors.ErrCommandNonZeroExit,
		"command %s from script %s failed with exit code %d", line, script, code).
		WithDetails(commandDetails(script, line)).
		WithDetail(errors.DetailExitCode, code)
}

func commandDetails(script, line string) map[string]interface{} {
	return map[string]interface{}{
		errors.DetailScript:  script,
		errors.DetailCommand: line,
	}
}
