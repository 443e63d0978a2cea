package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"enigmatick/internal/domain"
)

// B64 returns unpadded standard base64, the textual form used for keys.
func B64(b []byte) string { return base64.RawStdEncoding.EncodeToString(b) }

// DecodeB64 accepts standard base64 with or without padding.
func DecodeB64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// ParseCurve25519 decodes the textual form of a Curve25519 public key.
//
// Errors wrap domain.ErrInvalidKeyEncoding.
func ParseCurve25519(s string) (domain.X25519Public, error) {
	var out domain.X25519Public
	b, err := DecodeB64(s)
	if err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("%w: want %d bytes, got %d", domain.ErrInvalidKeyEncoding, len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
