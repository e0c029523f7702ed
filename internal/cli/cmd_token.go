package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-cli/internal/crypto"
)

func newTokenCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}
			if app.cfg.APISecret == "" {
				return usageErrorf("VAULTPASS_API_SECRET must be set to issue tokens")
			}

			token, err := crypto.GenerateToken(app.cfg.APISecret, app.cfg.TokenTTL)
			if err != nil {
				return mapCommandError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
