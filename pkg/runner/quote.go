package runner

import (
	"strings"
	"unicode"
)

// QuoteArg wraps arg in single quotes when it contains whitespace.
// The content is not escaped.
func QuoteArg(arg string) string {
	if strings.ContainsFunc(arg, unicode.IsSpace) {
		return "'" + arg + "'"
	}
	return arg
}

// QuoteArgs applies QuoteArg to every argument
func QuoteArgs(args []string) []string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = QuoteArg(arg)
	}
	return quoted
}

// CommandLine appends the quoted arguments to the command template
func CommandLine(template string, args []string) string {
	if len(args) == 0 {
		return template
	}
	return template + " " + strings.Join(QuoteArgs(args), " ")
}
