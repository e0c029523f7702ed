package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand(deps *commandDeps) *cobra.Command {
	var (
		label  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the password stored under a label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}

			rec, found, err := app.passwords.Find(label)
			if err != nil {
				return mapCommandError(err)
			}
			if !found {
				return &ExitError{Code: ExitCodeGeneric, Err: fmt.Errorf("no password saved for %q", label)}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprintln(out, rec.Password)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label to look up (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}
