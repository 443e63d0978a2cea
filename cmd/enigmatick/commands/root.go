package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"enigmatick/internal/app"
	"enigmatick/internal/logging"
)

// skipWire marks commands that run without loading the state.
const skipWire = "skip-wire"

// runtime is the per-invocation context shared by subcommands.
type runtime struct {
	home       string
	passphrase string
	logLevel   string

	cfg   app.Config
	wire  *app.Wire
	dirty bool
}

// mutated marks the state for saving once the command succeeds.
func (r *runtime) mutated() { r.dirty = true }

// close releases the snapshot backend, if one was opened.
func (r *runtime) close() error {
	if r.wire == nil {
		return nil
	}
	err := r.wire.Close()
	r.wire = nil
	return err
}

func Execute() error {
	root, r := newRootCmd(os.Stderr)
	defer r.close()
	return root.Execute()
}

func newRootCmd(logOut io.Writer) (*cobra.Command, *runtime) {
	r := &runtime{}
	root := &cobra.Command{
		Use:           "enigmatick",
		Short:         "Olm-style end-to-end session manager",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := app.ResolveHome(r.home)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(viper.New(), home)
			if err != nil {
				return err
			}
			if r.passphrase != "" {
				cfg.Store.Passphrase = r.passphrase
			}
			if r.logLevel != "" {
				cfg.Log.Level = r.logLevel
			}
			r.cfg = cfg

			if cmd.Annotations[skipWire] != "" {
				return nil
			}
			log, err := logging.New(cfg.Log, logOut)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			w, err := app.NewWire(ctx(cmd), cfg, log)
			if err != nil {
				return err
			}
			if err := w.Load(ctx(cmd)); err != nil {
				_ = w.Close()
				return err
			}
			r.wire = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if r.wire == nil || !r.dirty {
				return nil
			}
			return r.wire.Save(ctx(cmd))
		},
	}

	root.PersistentFlags().StringVar(&r.home, "home", "", "config dir (default $ENIGMATICK_HOME or ~/.enigmatick)")
	root.PersistentFlags().StringVarP(&r.passphrase, "passphrase", "p", "", "passphrase sealing the state file")
	root.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		initCmd(r),
		accountCmd(r),
		identityCmd(r),
		keysCmd(r),
		encryptCmd(r),
		decryptCmd(r),
		sessionsCmd(r),
		stateCmd(r),
	)
	return root, r
}

// readArg returns arg, or stdin when arg is "-".
func readArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// ctx returns the command context, or Background when none was set.
func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
