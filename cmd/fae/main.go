package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/fae/internal/cli"
	"github.com/arthur-debert/fae/pkg/errors"
)

func main() {
	cli.InitStyling()

	// Canceling the context kills every running script command
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
