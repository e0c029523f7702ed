package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCommand(deps *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the generation settings",
	}
	cmd.AddCommand(newSettingsShowCommand(deps), newSettingsSetCommand(deps))
	return cmd
}

func newSettingsShowCommand(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app.settings.Policy())
		},
	}
}

func newSettingsSetCommand(deps *commandDeps) *cobra.Command {
	var (
		length    int
		lowercase bool
		uppercase bool
		numbers   bool
		symbols   bool
		extended  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; flags that are not given keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := deps.load()
			if err != nil {
				return err
			}

			policy := app.settings.Policy()
			flags := cmd.Flags()
			if flags.Changed("length") {
				policy.Length = length
			}
			if flags.Changed("lowercase") {
				policy.IncludeLowercase = lowercase
			}
			if flags.Changed("uppercase") {
				policy.IncludeUppercase = uppercase
			}
			if flags.Changed("numbers") {
				policy.IncludeNumbers = numbers
			}
			if flags.Changed("symbols") {
				policy.IncludeSymbols = symbols
			}
			if flags.Changed("extended-symbols") {
				policy.IncludeExtendedSymbols = extended
			}

			updated, err := app.settings.Update(policy)
			if err != nil {
				return mapCommandError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s (length %d)\n", app.cfg.SettingsFile, updated.Length)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&length, "length", 0, "Password length, shorter values are raised to the minimum")
	flags.BoolVar(&lowercase, "lowercase", true, "Include lowercase letters")
	flags.BoolVar(&uppercase, "uppercase", true, "Include uppercase letters")
	flags.BoolVar(&numbers, "numbers", true, "Include digits")
	flags.BoolVar(&symbols, "symbols", true, "Include basic symbols")
	flags.BoolVar(&extended, "extended-symbols", true, "Include extended symbols")
	return cmd
}
