// Command fae-manpage renders the fae(1) man page to stdout, or into a
// directory when one is given.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/fae/internal/cli"
	"github.com/arthur-debert/fae/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "FAE",
		Section: "1",
		Source:  fmt.Sprintf("fae %s v%s", version.Channel(), version.Version),
		Manual:  "fae manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
