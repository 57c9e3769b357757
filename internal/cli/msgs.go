package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "A script runner with dependencies and per-run caching"
	MsgUse       = "fae [flags] <script> [args...]"

	// Status messages
	MsgBanner         = "fae %s v%s\n"
	MsgNoScripts      = "No scripts found."
	MsgScriptsHeader  = "Available scripts:"
	MsgUsesFormat     = "uses: %s"
	MsgVersionVerbose = "fae %s v%s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagList     = "List the available scripts and exit"
	MsgFlagShell    = "Shell that runs script commands"
	MsgFlagBinDir   = "Directory of project-local executables"
	MsgFlagConfig   = "Script files to look for, first found wins"
	MsgFlagManifest = "Manifest whose scripts are read"
	MsgFlagDir      = "Project directory (default is the current directory)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")
)
