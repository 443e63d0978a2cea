package types

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// CorrespondentID identifies a remote party, e.g. an actor URI. It is the only
// key into the session map.
type CorrespondentID string

// String returns the string form of the identifier.
func (id CorrespondentID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyID identifies a one-time key within an account's pool.
//
// Its textual form is the unpadded base64 encoding of the big-endian counter.
type KeyID uint64

// String returns the textual form of the key id.
func (id KeyID) String() string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return base64.RawStdEncoding.EncodeToString(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id KeyID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *KeyID) UnmarshalText(text []byte) error {
	b, err := decodeBase64(string(text))
	if err != nil {
		return fmt.Errorf("key id: %w", err)
	}
	if len(b) != 8 {
		return fmt.Errorf("key id: want 8 bytes, got %d", len(b))
	}
	*id = KeyID(binary.BigEndian.Uint64(b))
	return nil
}
