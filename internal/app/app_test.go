package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/app"
	"enigmatick/internal/domain"
)

func newApp(t *testing.T) *app.Wire {
	t.Helper()
	home := t.TempDir()
	w, err := app.NewWire(context.Background(), app.DefaultConfig(home), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestApp_NoAccount(t *testing.T) {
	a := newApp(t).App

	_, ok, err := a.ExportAccount()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = a.GetIdentityPublicKey()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = a.GetOneTimeKeys()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.DecryptMessage("bob", `{"type":0,"body":"AAAA"}`, "AAAA")
	assert.ErrorIs(t, err, domain.ErrMissingAccount)
}

func TestApp_Conversation(t *testing.T) {
	alice, bob := newApp(t).App, newApp(t).App
	_, err := alice.CreateAccount()
	require.NoError(t, err)
	_, err = bob.CreateAccount()
	require.NoError(t, err)

	keysJSON, ok, err := bob.GetOneTimeKeys()
	require.NoError(t, err)
	require.True(t, ok)
	var keys map[string]string
	require.NoError(t, json.Unmarshal([]byte(keysJSON), &keys))
	require.Len(t, keys, 10)

	again, ok, err := bob.GetOneTimeKeys()
	require.NoError(t, err)
	require.True(t, ok)
	var fresh map[string]string
	require.NoError(t, json.Unmarshal([]byte(again), &fresh))
	assert.Len(t, fresh, 10, "published keys are not handed out twice")
	for id := range fresh {
		assert.NotContains(t, keys, id)
	}

	var otk string
	for _, k := range keys {
		otk = k
		break
	}
	bobIK, _, err := bob.GetIdentityPublicKey()
	require.NoError(t, err)
	aliceIK, _, err := alice.GetIdentityPublicKey()
	require.NoError(t, err)

	env, err := alice.CreateMessage("bob@example", "hello bob", &bobIK, &otk)
	require.NoError(t, err)

	pt, err := bob.DecryptMessage("alice@example", env, aliceIK)
	require.NoError(t, err)
	assert.Equal(t, "hello bob", pt)

	_, err = bob.DecryptMessage("alice@example", env, aliceIK)
	assert.ErrorIs(t, err, domain.ErrSessionEstablishmentFailed)
}

func TestApp_StateRoundTrip(t *testing.T) {
	a := newApp(t).App
	_, err := a.CreateAccount()
	require.NoError(t, err)

	exported, err := a.ExportState()
	require.NoError(t, err)

	b := newApp(t).App
	require.NoError(t, b.ImportState(exported))
	got, err := b.ExportState()
	require.NoError(t, err)
	assert.Equal(t, exported, got)

	assert.ErrorIs(t, b.ImportState(`{"pickled_account":"x"}`), domain.ErrDeserialization)
}

func TestWire_SaveLoad(t *testing.T) {
	ctx := context.Background()
	cfg := app.DefaultConfig(t.TempDir())
	cfg.PickleKey = "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA"

	w, err := app.NewWire(ctx, cfg, nil)
	require.NoError(t, err)
	_, err = w.App.CreateAccount()
	require.NoError(t, err)
	want, err := w.App.ExportState()
	require.NoError(t, err)
	require.NoError(t, w.Save(ctx))
	require.NoError(t, w.Close())

	w2, err := app.NewWire(ctx, cfg, nil)
	require.NoError(t, err)
	defer w2.Close()
	require.NoError(t, w2.Load(ctx))
	got, err := w2.App.ExportState()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cfg.PickleKey = "AAAA"
	_, err = app.NewWire(ctx, cfg, nil)
	assert.Error(t, err)
}

func TestWire_LoadFailsWithWrongPickleKey(t *testing.T) {
	ctx := context.Background()
	cfg := app.DefaultConfig(t.TempDir())
	cfg.PickleKey = "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA"

	w, err := app.NewWire(ctx, cfg, nil)
	require.NoError(t, err)
	_, err = w.App.CreateAccount()
	require.NoError(t, err)
	require.NoError(t, w.Save(ctx))

	cfg.PickleKey = "ICEiIyQlJicoKSorLC0uLzAxMjM0NTY3ODk6Ozw9Pj8"
	other, err := app.NewWire(ctx, cfg, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, other.Load(ctx), domain.ErrDeserialization)
}
