package pickle

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
)

// KeySize is the length of a pickle key.
const KeySize = chacha20poly1305.KeySize

// Codec encodes records to pickles. The zero value produces plain JSON.
type Codec struct {
	key []byte
}

// New returns a codec. A nil key yields plain JSON pickles; otherwise key
// must be KeySize bytes.
func New(key []byte) (*Codec, error) {
	if key == nil {
		return &Codec{}, nil
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("pickle key: want %d bytes, got %d", KeySize, len(key))
	}
	return &Codec{key: append([]byte(nil), key...)}, nil
}

// ParseKey decodes a base64 pickle key. An empty string means no key.
func ParseKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := crypto.DecodeB64(s)
	if err != nil {
		return nil, fmt.Errorf("pickle key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("pickle key: want %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

// Sealed reports whether the codec encrypts pickles.
func (c *Codec) Sealed() bool { return c != nil && len(c.key) > 0 }

// Encode marshals v into a pickle.
func (c *Codec) Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if !c.Sealed() {
		return string(raw), nil
	}

	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(raw)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return crypto.B64(aead.Seal(nonce, nonce, raw, nil)), nil
}

// Decode unmarshals a pickle into v.
func (c *Codec) Decode(pickle string, v any) error {
	raw := []byte(pickle)
	if c.Sealed() {
		b, err := crypto.DecodeB64(pickle)
		if err != nil {
			return fmt.Errorf("%w: pickle is not base64: %v", domain.ErrDeserialization, err)
		}
		aead, err := chacha20poly1305.New(c.key)
		if err != nil {
			return err
		}
		if len(b) < aead.NonceSize()+aead.Overhead() {
			return fmt.Errorf("%w: pickle too short", domain.ErrDeserialization)
		}
		raw, err = aead.Open(nil, b[:aead.NonceSize()], b[aead.NonceSize():], nil)
		if err != nil {
			return fmt.Errorf("%w: wrong pickle key or corrupted pickle", domain.ErrDeserialization)
		}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeserialization, err)
	}
	return nil
}
