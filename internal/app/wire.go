package app

import (
	"context"
	"fmt"
	"log/slog"

	"enigmatick/internal/domain"
	"enigmatick/internal/logging"
	"enigmatick/internal/pickle"
	"enigmatick/internal/protocol/olm"
	accountsvc "enigmatick/internal/services/account"
	exchangesvc "enigmatick/internal/services/exchange"
	snapshotsvc "enigmatick/internal/services/snapshot"
	"enigmatick/internal/store"
)

// Wire bundles the state, services and snapshot backend for the CLI.
type Wire struct {
	State     *store.State
	Accounts  *accountsvc.Service
	Exchange  *exchangesvc.Service
	Snapshots *snapshotsvc.Service
	Backend   domain.SnapshotStore
	App       *App
	Log       *slog.Logger
}

// NewWire constructs the dependency graph from cfg. A nil log discards
// records.
func NewWire(ctx context.Context, cfg Config, log *slog.Logger) (*Wire, error) {
	log = logging.OrDiscard(log)

	key, err := pickle.ParseKey(cfg.PickleKey)
	if err != nil {
		return nil, err
	}
	codec, err := pickle.New(key)
	if err != nil {
		return nil, err
	}
	provider := olm.NewProvider(codec)

	backend, err := OpenBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	state := store.NewState()
	w := &Wire{
		State:     state,
		Accounts:  accountsvc.New(state, provider, log.With("service", "account")),
		Exchange:  exchangesvc.New(state, provider, log.With("service", "exchange")),
		Snapshots: snapshotsvc.New(state, provider, log.With("service", "snapshot")),
		Backend:   backend,
		Log:       log,
	}
	w.App = New(w.Accounts, w.Exchange, w.Snapshots)
	return w, nil
}

// OpenBackend opens the snapshot backend cfg selects.
func OpenBackend(ctx context.Context, cfg StoreConfig) (domain.SnapshotStore, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return store.NewFileSnapshotStore(cfg.Path, cfg.Passphrase), nil
	case BackendBadger:
		return store.OpenBadgerSnapshotStore(cfg.Path)
	case BackendRedis:
		return store.NewRedisSnapshotStoreFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Load restores the persisted snapshot into the state, if there is one.
func (w *Wire) Load(ctx context.Context) error {
	found, err := w.Snapshots.Restore(ctx, w.Backend)
	if err != nil {
		return err
	}
	w.Log.Debug("state loaded", "found", found)
	return nil
}

// Save persists the state to the backend.
func (w *Wire) Save(ctx context.Context) error {
	return w.Snapshots.Persist(ctx, w.Backend)
}

// Close releases the backend.
func (w *Wire) Close() error { return w.Backend.Close() }
