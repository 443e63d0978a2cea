package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"enigmatick/internal/domain"
)

var badgerSnapshotKey = []byte("enigmatick/state")

// BadgerSnapshotStore keeps the exported state under one key in a Badger
// database.
type BadgerSnapshotStore struct {
	db *badger.DB
}

// OpenBadgerSnapshotStore opens (or creates) the database at dir. An empty dir
// opens an in-memory database.
func OpenBadgerSnapshotStore(dir string) (*BadgerSnapshotStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerSnapshotStore{db: db}, nil
}

// LoadSnapshot reads the snapshot. A missing key reports ok=false.
func (s *BadgerSnapshotStore) LoadSnapshot(_ context.Context) (string, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerSnapshotKey)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

// SaveSnapshot replaces the stored snapshot.
func (s *BadgerSnapshotStore) SaveSnapshot(_ context.Context, snapshot string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerSnapshotKey, []byte(snapshot))
	})
}

// Close closes the database.
func (s *BadgerSnapshotStore) Close() error { return s.db.Close() }

// Compile-time assertion that BadgerSnapshotStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*BadgerSnapshotStore)(nil)
