package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"enigmatick/internal/services/account"
)

func keysCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage one-time keys",
	}

	var generateCount, publishCount int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Add one-time keys and print the whole pool as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := r.wire.Accounts.GenerateOneTimeKeys(generateCount)
			if err != nil {
				return err
			}
			r.mutated()
			return printJSON(cmd, keys)
		},
	}
	generate.Flags().IntVarP(&generateCount, "count", "n", account.DefaultOneTimeKeyCount, "number of keys to add")

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Add one-time keys, print every unpublished key as JSON and mark them published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := r.wire.Accounts.PublishOneTimeKeys(publishCount)
			if err != nil {
				return err
			}
			r.mutated()
			return printJSON(cmd, keys)
		},
	}
	publish.Flags().IntVarP(&publishCount, "count", "n", account.DefaultOneTimeKeyCount, "number of keys to add")

	markPublished := &cobra.Command{
		Use:   "mark-published",
		Short: "Flag every one-time key as published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.wire.Accounts.MarkKeysPublished(); err != nil {
				return err
			}
			r.mutated()
			fmt.Fprintln(cmd.OutOrStdout(), "Keys marked as published.")
			return nil
		},
	}

	cmd.AddCommand(generate, publish, markPublished)
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
