package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/store"
)

func TestBadgerSnapshot_InMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenBadgerSnapshotStore("")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveSnapshot(ctx, sampleSnapshot))
	got, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot, got)
}

func TestBadgerSnapshot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.OpenBadgerSnapshotStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(ctx, sampleSnapshot))
	require.NoError(t, s.Close())

	s, err = store.OpenBadgerSnapshotStore(dir)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot, got)
}
