package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// decrypt <id> <envelope>: decrypt a pre-key message from <id>.
func decryptCmd(r *runtime) *cobra.Command {
	var identityKey string
	cmd := &cobra.Command{
		Use:   "decrypt <id> <envelope|->",
		Short: "Decrypt a pre-key message from a correspondent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readArg(cmd, args[1])
			if err != nil {
				return err
			}
			pt, err := r.wire.App.DecryptMessage(args[0], env, identityKey)
			if err != nil {
				return err
			}
			r.mutated()
			fmt.Fprintln(cmd.OutOrStdout(), pt)
			return nil
		},
	}
	cmd.Flags().StringVar(&identityKey, "identity-key", "", "sender's Curve25519 identity key")
	_ = cmd.MarkFlagRequired("identity-key")
	return cmd
}
