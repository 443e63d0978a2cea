package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/store"
)

const sampleSnapshot = `{"pickled_account":"acct","olm_sessions":{"bob":"s"}}`

func TestFileSnapshot_MissingIsAbsent(t *testing.T) {
	s := store.NewFileSnapshotStore(t.TempDir(), "")
	_, ok, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSnapshot_PlainRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewFileSnapshotStore(t.TempDir(), "")

	require.NoError(t, s.SaveSnapshot(ctx, sampleSnapshot))
	got, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot, got)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileSnapshot_SealedRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := store.NewFileSnapshotStore(dir, "correct horse battery")

	require.NoError(t, s.SaveSnapshot(ctx, sampleSnapshot))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "acct")

	got, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot, got)

	_, _, err = store.NewFileSnapshotStore(dir, "wrong passphrase!").LoadSnapshot(ctx)
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)

	_, _, err = store.NewFileSnapshotStore(dir, "").LoadSnapshot(ctx)
	assert.ErrorIs(t, err, store.ErrPassphraseRequired)
}
