package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fae/internal/version"
	"github.com/arthur-debert/fae/pkg/config"
	"github.com/arthur-debert/fae/pkg/core"
	"github.com/arthur-debert/fae/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command. fae has no
// subcommands: the first argument is always a script name, and every
// argument after it belongs to the script.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		list      bool
	)

	rootCmd := &cobra.Command{
		Use:     MsgUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgBanner, version.Channel(), version.Version)
				return cmd.Usage()
			}

			project, err := loadProject(cmd)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), project.Warnings)

			if list {
				return printScripts(cmd.OutOrStdout(), project.Scripts())
			}

			return core.RunScript(cmd.Context(), core.RunOptions{
				Project: project,
				Script:  args[0],
				Args:    args[1:],
				Stdin:   cmd.InOrStdin(),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
		},
		ValidArgsFunction: scriptNamesCompletion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionVerbose,
		version.Channel(), version.Version, version.Commit, version.Date))

	// Flags end at the script name; the rest goes to the script verbatim
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	rootCmd.Flags().String("shell", "", MsgFlagShell)
	rootCmd.Flags().String("bin-dir", "", MsgFlagBinDir)
	rootCmd.Flags().StringSlice("config", nil, MsgFlagConfig)
	rootCmd.Flags().String("manifest", "", MsgFlagManifest)
	rootCmd.Flags().StringP("dir", "C", "", MsgFlagDir)

	_ = rootCmd.MarkFlagDirname("dir")
	_ = rootCmd.MarkFlagDirname("bin-dir")

	return rootCmd
}

func loadProject(cmd *cobra.Command) (*core.Project, error) {
	settings, err := config.Load(config.LoadOptions{Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	return core.LoadProject(settings)
}

// scriptNamesCompletion completes the first argument with the scripts of
// the project. Script arguments are left to the shell.
func scriptNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	project, err := loadProject(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, s := range project.Scripts() {
		if !strings.HasPrefix(s.Name, toComplete) {
			continue
		}
		desc := s.Run
		if desc == "" && len(s.Uses) > 0 {
			desc = fmt.Sprintf(MsgUsesFormat, strings.Join(s.Uses, ", "))
		}
		if desc != "" {
			names = append(names, s.Name+"\t"+desc)
		} else {
			names = append(names, s.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
