package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func accountCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create, export or import the local account",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create a new account, replacing any existing one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := r.wire.App.CreateAccount(); err != nil {
					return err
				}
				r.mutated()
				keys, fp, err := r.wire.Accounts.IdentityKeys()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Account created.\nIdentity key: %s\nFingerprint: %s\n", keys.Curve25519, fp)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Print the account pickle",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				pickle, ok, err := r.wire.App.ExportAccount()
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no account; run `enigmatick account create`")
				}
				fmt.Fprintln(cmd.OutOrStdout(), pickle)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <pickle|->",
			Short: "Replace the account with a pickle (\"-\" reads stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pickle, err := readArg(cmd, args[0])
				if err != nil {
					return err
				}
				if err := r.wire.Accounts.Import(pickle); err != nil {
					return err
				}
				r.mutated()
				fmt.Fprintln(cmd.OutOrStdout(), "Account imported.")
				return nil
			},
		},
	)
	return cmd
}
