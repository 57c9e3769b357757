package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/fae/pkg/core"
	"github.com/arthur-debert/fae/pkg/registry"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// InitStyling turns pterm styling off when stdout is not a terminal
func InitStyling() {
	if !IsTerminal(os.Stdout) {
		pterm.DisableStyling()
	}
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !IsTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"boldUpper": formatBoldUpper,
	})
}

// PrintError writes err with an error prefix
func PrintError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
}

func printWarnings(w io.Writer, warnings []registry.Warning) {
	printer := pterm.Warning.WithWriter(w)
	for _, warning := range warnings {
		printer.Println(warning.String())
	}
}

func printScripts(w io.Writer, scripts []core.ScriptInfo) error {
	if len(scripts) == 0 {
		_, err := fmt.Fprintln(w, MsgNoScripts)
		return err
	}

	data := pterm.TableData{}
	for _, s := range scripts {
		detail := s.Run
		if len(s.Uses) > 0 {
			uses := fmt.Sprintf(MsgUsesFormat, strings.Join(s.Uses, ", "))
			if detail == "" {
				detail = uses
			} else {
				detail = fmt.Sprintf("%s  (%s)", detail, uses)
			}
		}
		data = append(data, []string{"  " + formatBold(s.Name), detail})
	}

	table, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", MsgScriptsHeader, table)
	return err
}
