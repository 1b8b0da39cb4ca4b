package genconfig

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/lkdots/pkg/commands"
	"github.com/arthur-debert/lkdots/pkg/config"
)

// NewCommand creates the gen-config command
func NewCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := commands.GenConfig(commands.GenConfigOptions{
				Write: write,
				Path:  config.DefaultConfigName,
			})
			if err != nil {
				return err
			}
			if write {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.DefaultConfigName)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write config to file instead of stdout")

	return cmd
}
