// Package runner turns one script's command into a supervised shell
// subprocess.
//
// A command line is the script's run template followed by the invocation
// arguments. Arguments are quoted with a deliberately minimal rule: an
// argument containing whitespace is wrapped in single quotes verbatim,
// anything else is passed as is. Embedded quotes are not escaped.
//
//	echo + ["hello world"] -> echo 'hello world'
//	echo + ["hello"]       -> echo hello
//
// The line is handed to the configured shell with -c. Stdin is always the
// runner's stdin; stdout and stderr are either the runner's streams or
// discarded, per script. The subprocess sees the runner's environment with
// the run's overrides applied.
//
// Every way a command can fail maps to one error code from pkg/errors:
// spawn failure, wait failure, termination by signal, and nonzero exit.
package runner
