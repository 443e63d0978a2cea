package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// String returns the unpadded base64 form of the key.
func (p X25519Public) String() string { return base64.RawStdEncoding.EncodeToString(p[:]) }

// MarshalText implements encoding.TextMarshaler.
func (p X25519Public) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *X25519Public) UnmarshalText(text []byte) error {
	return decodeKey(string(text), p[:])
}

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// MarshalText implements encoding.TextMarshaler.
func (k X25519Private) MarshalText() ([]byte, error) {
	return []byte(base64.RawStdEncoding.EncodeToString(k[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *X25519Private) UnmarshalText(text []byte) error {
	return decodeKey(string(text), k[:])
}

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// String returns the unpadded base64 form of the key.
func (p Ed25519Public) String() string { return base64.RawStdEncoding.EncodeToString(p[:]) }

// MarshalText implements encoding.TextMarshaler.
func (p Ed25519Public) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Ed25519Public) UnmarshalText(text []byte) error {
	return decodeKey(string(text), p[:])
}

// Ed25519Private is an Ed25519 signing private key.
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// MarshalText implements encoding.TextMarshaler.
func (k Ed25519Private) MarshalText() ([]byte, error) {
	return []byte(base64.RawStdEncoding.EncodeToString(k[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Ed25519Private) UnmarshalText(text []byte) error {
	return decodeKey(string(text), k[:])
}

// Identity holds the account's long-term X25519 and Ed25519 keys.
type Identity struct {
	XPub   X25519Public   `json:"xpub"`
	XPriv  X25519Private  `json:"xpriv"`
	EdPub  Ed25519Public  `json:"edpub"`
	EdPriv Ed25519Private `json:"edpriv"`
}

// IdentityKeys is the public half of an Identity.
type IdentityKeys struct {
	Curve25519 X25519Public  `json:"curve25519"`
	Ed25519    Ed25519Public `json:"ed25519"`
}

// decodeKey decodes base64 text into out, which must be filled exactly.
func decodeKey(text string, out []byte) error {
	b, err := decodeBase64(text)
	if err != nil {
		return err
	}
	if len(b) != len(out) {
		return fmt.Errorf("want %d key bytes, got %d", len(out), len(b))
	}
	copy(out, b)
	return nil
}

// decodeBase64 accepts standard base64 with or without padding.
func decodeBase64(text string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(text, "="))
}
