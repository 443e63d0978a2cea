package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func stateCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Export or import the whole state record",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Print the state record as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := r.wire.App.ExportState()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <record|->",
			Short: "Replace the state with a record (\"-\" reads stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := readArg(cmd, args[0])
				if err != nil {
					return err
				}
				if err := r.wire.App.ImportState(data); err != nil {
					return err
				}
				r.mutated()
				fmt.Fprintln(cmd.OutOrStdout(), "State imported.")
				return nil
			},
		},
	)
	return cmd
}
