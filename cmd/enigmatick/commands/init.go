package commands

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"enigmatick/internal/app"
	"enigmatick/internal/crypto"
	"enigmatick/internal/pickle"
)

func initCmd(r *runtime) *cobra.Command {
	var (
		backend   string
		force     bool
		pickleKey bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config.toml to the home directory",
		Annotations: map[string]string{skipWire: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig(r.cfg.Home)
			if backend != "" {
				cfg.Store.Backend = backend
			}
			if r.passphrase != "" {
				if err := crypto.CheckPassphrase(r.passphrase); err != nil {
					return err
				}
				cfg.Store.Passphrase = r.passphrase
			}
			if pickleKey {
				key := make([]byte, pickle.KeySize)
				if _, err := rand.Read(key); err != nil {
					return err
				}
				cfg.PickleKey = crypto.B64(key)
			}
			switch cfg.Store.Backend {
			case app.BackendFile, app.BackendBadger, app.BackendRedis:
			default:
				return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
			}

			path, err := app.WriteConfigFile(cfg, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "snapshot backend: file, badger or redis")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.toml")
	cmd.Flags().BoolVar(&pickleKey, "pickle-key", false, "generate a key sealing account and session pickles")
	return cmd
}
