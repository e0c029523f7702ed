package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-cli/internal/model"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

func newGenerateCommand(deps *commandDeps) *cobra.Command {
	var (
		label     string
		printOnly bool
		length    int
		lowercase bool
		uppercase bool
		numbers   bool
		symbols   bool
		extended  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a password, optionally storing it under a label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var req model.GenerateRequest
			if flags.Changed("length") {
				if length <= 0 {
					return usageErrorf("--length must be positive")
				}
				req.Length = length
			}
			req.Lowercase = changedBool(cmd, "lowercase", lowercase)
			req.Uppercase = changedBool(cmd, "uppercase", uppercase)
			req.Numbers = changedBool(cmd, "numbers", numbers)
			req.Symbols = changedBool(cmd, "symbols", symbols)
			req.ExtendedSymbols = changedBool(cmd, "extended-symbols", extended)

			policy, err := service.ApplyRequest(app.settings.Policy(), req)
			if err != nil {
				return mapCommandError(err)
			}

			out := cmd.OutOrStdout()
			if label == "" || printOnly {
				resp, err := app.generator.Generate(policy)
				if err != nil {
					return mapCommandError(err)
				}
				fmt.Fprintln(out, resp.Password)
				printStrength(out, resp.Strength)
				return nil
			}

			resp, err := app.passwords.GenerateWith(label, policy)
			if err != nil {
				return mapCommandError(err)
			}
			fmt.Fprintln(out, resp.Password)
			printStrength(out, resp.Strength)
			fmt.Fprintf(out, "Saved %q to %s\n", resp.Label, app.passwords.StorePath())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&label, "label", "l", "", "Store the password under this label")
	flags.BoolVar(&printOnly, "print-only", false, "Print the password without storing it")
	flags.IntVar(&length, "length", 0, "Password length (default from settings)")
	flags.BoolVar(&lowercase, "lowercase", true, "Include lowercase letters")
	flags.BoolVar(&uppercase, "uppercase", true, "Include uppercase letters")
	flags.BoolVar(&numbers, "numbers", true, "Include digits")
	flags.BoolVar(&symbols, "symbols", true, "Include basic symbols")
	flags.BoolVar(&extended, "extended-symbols", true, "Include extended symbols")
	return cmd
}

// changedBool returns a pointer to value only when the flag was set explicitly.
func changedBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
