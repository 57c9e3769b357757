// Command fae-completions writes fae's shell completion scripts, either
// one shell to stdout or every shell into a directory for packaging.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fae/internal/cli"
)

type generator func(cmd *cobra.Command, w io.Writer) error

var shells = map[string]struct {
	file string
	gen  generator
}{
	"bash":       {"fae.bash", func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) }},
	"zsh":        {"_fae", func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) }},
	"fish":       {"fae.fish", func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) }},
	"powershell": {"fae.ps1", func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n       %s --all <dir>\n", os.Args[0], os.Args[0])
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd()

	if os.Args[1] == "--all" {
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "--all needs an output directory")
			os.Exit(1)
		}
		if err := writeAll(rootCmd, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	shell, ok := shells[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Supported shells: bash, zsh, fish, powershell\n")
		os.Exit(1)
	}
	if err := shell.gen(rootCmd, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func writeAll(rootCmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, shell := range shells {
		f, err := os.Create(filepath.Join(dir, shell.file))
		if err != nil {
			return err
		}
		err = shell.gen(rootCmd, f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
