package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func identityCmd(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print the identity keys and fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, fp, err := r.wire.Accounts.IdentityKeys()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Curve25519: %s\n", keys.Curve25519)
			fmt.Fprintf(out, "Ed25519: %s\n", keys.Ed25519)
			fmt.Fprintf(out, "Fingerprint: %s\n", fp)
			return nil
		},
	}
}
