package snapshot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/domain"
	"enigmatick/internal/protocol/olm"
	"enigmatick/internal/services/account"
	"enigmatick/internal/services/exchange"
	"enigmatick/internal/services/snapshot"
	"enigmatick/internal/store"
)

type node struct {
	state    *store.State
	accounts *account.Service
	exchange *exchange.Service
	snapshot *snapshot.Service
}

func newNode() *node {
	st := store.NewState()
	p := olm.NewProvider(nil)
	return &node{
		state:    st,
		accounts: account.New(st, p, nil),
		exchange: exchange.New(st, p, nil),
		snapshot: snapshot.New(st, p, nil),
	}
}

// populated returns a node with an account and one session.
func populated(t *testing.T) *node {
	t.Helper()
	alice, bob := newNode(), newNode()
	_, err := alice.accounts.Create()
	require.NoError(t, err)
	_, err = bob.accounts.Create()
	require.NoError(t, err)

	ik, _, err := bob.accounts.IdentityPublicKey()
	require.NoError(t, err)
	keys, err := bob.accounts.PublishOneTimeKeys(1)
	require.NoError(t, err)
	var otk string
	for _, k := range keys {
		otk = k.String()
	}
	_, err = alice.exchange.CreateMessage("https://example.com/bob", "hi", &ik, &otk)
	require.NoError(t, err)
	return alice
}

func TestExport_Empty(t *testing.T) {
	out, err := newNode().snapshot.Export()
	require.NoError(t, err)
	assert.JSONEq(t, `{"pickled_account":null,"olm_sessions":null}`, out)
}

func TestExportImport_RoundTripIsByteForByte(t *testing.T) {
	alice := populated(t)
	exported, err := alice.snapshot.Export()
	require.NoError(t, err)

	other := newNode()
	require.NoError(t, other.snapshot.Import(exported))
	again, err := other.snapshot.Export()
	require.NoError(t, err)
	assert.Equal(t, exported, again)

	ids, err := other.exchange.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []domain.CorrespondentID{"https://example.com/bob"}, ids)

	// The imported session keeps working.
	_, err = other.exchange.CreateMessage("https://example.com/bob", "again", nil, nil)
	require.NoError(t, err)
}

func TestImport_ReplacesEverything(t *testing.T) {
	alice := populated(t)
	require.NoError(t, alice.snapshot.Import(`{"pickled_account":null,"olm_sessions":null}`))

	out, err := alice.snapshot.Export()
	require.NoError(t, err)
	assert.JSONEq(t, `{"pickled_account":null,"olm_sessions":null}`, out)
}

func TestImport_RejectsMalformedAtomically(t *testing.T) {
	alice := populated(t)
	before, err := alice.snapshot.Export()
	require.NoError(t, err)

	acct, _, err := alice.accounts.Export()
	require.NoError(t, err)
	validAccount, err := jsonString(acct)
	require.NoError(t, err)

	cases := map[string]string{
		"not json":            `{`,
		"missing sessions":    `{"pickled_account":null}`,
		"missing account":     `{"olm_sessions":null}`,
		"wrong account type":  `{"pickled_account":5,"olm_sessions":null}`,
		"bad account pickle":  `{"pickled_account":"junk","olm_sessions":null}`,
		"bad session pickle":  `{"pickled_account":` + validAccount + `,"olm_sessions":{"bob":"junk"}}`,
		"sessions not an obj": `{"pickled_account":null,"olm_sessions":[]}`,
		"empty correspondent": `{"pickled_account":null,"olm_sessions":{"":"x"}}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			err := alice.snapshot.Import(in)
			require.ErrorIs(t, err, domain.ErrDeserialization)

			after, err := alice.snapshot.Export()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestRestorePersist_Backend(t *testing.T) {
	ctx := context.Background()
	backend := store.NewFileSnapshotStore(t.TempDir(), "")

	fresh := newNode()
	found, err := fresh.snapshot.Restore(ctx, backend)
	require.NoError(t, err)
	assert.False(t, found)

	alice := populated(t)
	require.NoError(t, alice.snapshot.Persist(ctx, backend))
	want, err := alice.snapshot.Export()
	require.NoError(t, err)

	found, err = fresh.snapshot.Restore(ctx, backend)
	require.NoError(t, err)
	assert.True(t, found)
	got, err := fresh.snapshot.Export()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImport_BusyState(t *testing.T) {
	n := newNode()
	err := n.state.Update(func(domain.StateTx) error {
		assert.ErrorIs(t, n.snapshot.Import(`{"pickled_account":null,"olm_sessions":null}`), domain.ErrBusy)
		_, err := n.snapshot.Export()
		assert.ErrorIs(t, err, domain.ErrBusy)
		return nil
	})
	require.NoError(t, err)
}
