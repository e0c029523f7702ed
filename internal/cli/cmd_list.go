package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(deps *commandDeps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}

			records, err := app.passwords.List()
			if err != nil {
				return mapCommandError(err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No passwords saved yet!")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "Username: %s Password: %s\n", r.Label, r.Password)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}
