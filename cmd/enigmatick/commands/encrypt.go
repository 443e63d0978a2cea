package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// encrypt <id> <message>: encrypt a message for <id> and print the envelope.
func encryptCmd(r *runtime) *cobra.Command {
	var identityKey, oneTimeKey string
	cmd := &cobra.Command{
		Use:   "encrypt <id> <message|->",
		Short: "Encrypt a message for a correspondent",
		Long: "Encrypt a message for a correspondent. An existing session is always used; " +
			"otherwise --identity-key and --one-time-key establish one.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := readArg(cmd, args[1])
			if err != nil {
				return err
			}
			var ik, otk *string
			if cmd.Flags().Changed("identity-key") {
				ik = &identityKey
			}
			if cmd.Flags().Changed("one-time-key") {
				otk = &oneTimeKey
			}
			env, err := r.wire.App.CreateMessage(args[0], plaintext, ik, otk)
			if err != nil {
				return err
			}
			r.mutated()
			fmt.Fprintln(cmd.OutOrStdout(), env)
			return nil
		},
	}
	cmd.Flags().StringVar(&identityKey, "identity-key", "", "correspondent's Curve25519 identity key")
	cmd.Flags().StringVar(&oneTimeKey, "one-time-key", "", "one of the correspondent's published one-time keys")
	return cmd
}
