package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sessionsCmd(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List correspondents with a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := r.wire.Exchange.Sessions()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
