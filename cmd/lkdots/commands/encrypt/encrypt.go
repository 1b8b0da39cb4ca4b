package encrypt

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lkdots/pkg/commands"
	"github.com/arthur-debert/lkdots/pkg/crypto"
)

// NewCommand creates the encrypt command. configPath points at the
// root command's --config flag value.
func NewCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt",
		Short: MsgShort,
		Long:  MsgLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCrypto(commands.CryptoOptions{
				ConfigPath: *configPath,
				Mode:       crypto.ModeEncrypt,
			})
		},
	}
}
