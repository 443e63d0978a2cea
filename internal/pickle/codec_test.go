package pickle_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/pickle"
)

type record struct {
	Name  string              `json:"name"`
	Key   domain.X25519Public `json:"key"`
	Count int                 `json:"count"`
}

func TestCodec_PlainRoundTrip(t *testing.T) {
	codec, err := pickle.New(nil)
	require.NoError(t, err)
	assert.False(t, codec.Sealed())

	in := record{Name: "alice", Key: domain.X25519Public{7}, Count: 3}
	p, err := codec.Encode(in)
	require.NoError(t, err)
	assert.Contains(t, p, `"name":"alice"`)

	var out record
	require.NoError(t, codec.Decode(p, &out))
	assert.Equal(t, in, out)
}

func TestCodec_SealedRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{9}, pickle.KeySize)
	codec, err := pickle.New(key)
	require.NoError(t, err)
	assert.True(t, codec.Sealed())

	in := record{Name: "bob", Count: 1}
	p, err := codec.Encode(in)
	require.NoError(t, err)
	assert.NotContains(t, p, "bob")

	var out record
	require.NoError(t, codec.Decode(p, &out))
	assert.Equal(t, in, out)
}

func TestCodec_SealedWrongKeyFails(t *testing.T) {
	sealer, err := pickle.New(bytes.Repeat([]byte{1}, pickle.KeySize))
	require.NoError(t, err)
	other, err := pickle.New(bytes.Repeat([]byte{2}, pickle.KeySize))
	require.NoError(t, err)

	p, err := sealer.Encode(record{Name: "x"})
	require.NoError(t, err)

	var out record
	err = other.Decode(p, &out)
	require.ErrorIs(t, err, domain.ErrDeserialization)
}

func TestCodec_MalformedInput(t *testing.T) {
	plain, err := pickle.New(nil)
	require.NoError(t, err)
	sealed, err := pickle.New(bytes.Repeat([]byte{3}, pickle.KeySize))
	require.NoError(t, err)

	var out record
	for _, tc := range []struct {
		name  string
		codec *pickle.Codec
		input string
	}{
		{"plain not json", plain, "{nope"},
		{"plain wrong shape", plain, `{"key":"AAAA"}`},
		{"sealed not base64", sealed, "!!!"},
		{"sealed too short", sealed, crypto.B64([]byte("tiny"))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.codec.Decode(tc.input, &out)
			require.ErrorIs(t, err, domain.ErrDeserialization)
		})
	}
}

func TestParseKey(t *testing.T) {
	key, err := pickle.ParseKey("")
	require.NoError(t, err)
	assert.Nil(t, key)

	raw := bytes.Repeat([]byte{5}, pickle.KeySize)
	key, err = pickle.ParseKey(crypto.B64(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, key)

	_, err = pickle.ParseKey(crypto.B64([]byte("short")))
	assert.Error(t, err)

	_, err = pickle.New([]byte("short"))
	assert.Error(t, err)
}
