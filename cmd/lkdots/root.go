package lkdots

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lkdots/cmd/lkdots/commands/decrypt"
	"github.com/arthur-debert/lkdots/cmd/lkdots/commands/encrypt"
	"github.com/arthur-debert/lkdots/cmd/lkdots/commands/genconfig"
	"github.com/arthur-debert/lkdots/internal/version"
	"github.com/arthur-debert/lkdots/pkg/commands"
	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/output"
)

// NewRootCmd creates the root command. Running lkdots with no
// subcommand deploys the manifest.
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
		simulate   bool
	)

	rootCmd := &cobra.Command{
		Use:   "lkdots",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			output.Setup()
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Deploy(commands.DeployOptions{
				ConfigPath: configPath,
				Simulate:   simulate,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigName, MsgFlagConfig)
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, MsgFlagSimulate)

	rootCmd.AddCommand(encrypt.NewCommand(&configPath))
	rootCmd.AddCommand(decrypt.NewCommand(&configPath))
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lkdots version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}
