package olm

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
)

const (
	messageVersion   byte = 1
	normalHeaderSize      = 1 + 32 + 4 + 4
	preKeyHeaderSize      = 1 + 32 + 32 + 32
)

// ParseMessage decodes a JSON envelope and checks its type. The body is left
// to DecodePreKey and DecodeNormal, which reject empty or short bodies.
func ParseMessage(envelope string) (domain.OlmMessage, error) {
	var msg domain.OlmMessage
	if err := json.Unmarshal([]byte(envelope), &msg); err != nil {
		return domain.OlmMessage{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	switch msg.Type {
	case domain.MessageTypePreKey, domain.MessageTypeNormal:
	default:
		return domain.OlmMessage{}, fmt.Errorf("%w: unknown type %d", ErrMalformedMessage, msg.Type)
	}
	return msg, nil
}

// MarshalMessage encodes msg as its JSON envelope.
func MarshalMessage(msg domain.OlmMessage) (string, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeNormal decodes the body of a normal message.
func DecodeNormal(body string) (domain.NormalMessage, error) {
	b, err := crypto.DecodeB64(body)
	if err != nil {
		return domain.NormalMessage{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return decodeNormal(b)
}

// DecodePreKey decodes the body of a pre-key message.
func DecodePreKey(body string) (domain.PreKeyMessage, error) {
	b, err := crypto.DecodeB64(body)
	if err != nil {
		return domain.PreKeyMessage{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if len(b) < preKeyHeaderSize || b[0] != messageVersion {
		return domain.PreKeyMessage{}, fmt.Errorf("%w: bad pre-key header", ErrMalformedMessage)
	}

	var pk domain.PreKeyMessage
	copy(pk.OneTimeKey[:], b[1:33])
	copy(pk.BaseKey[:], b[33:65])
	copy(pk.IdentityKey[:], b[65:97])
	pk.Message, err = decodeNormal(b[preKeyHeaderSize:])
	if err != nil {
		return domain.PreKeyMessage{}, err
	}
	return pk, nil
}

func encodeNormal(m domain.NormalMessage) []byte {
	out := make([]byte, 0, normalHeaderSize+len(m.Ciphertext))
	out = append(out, messageVersion)
	out = append(out, m.Header.DiffieHellmanPublicKey[:]...)
	out = binary.BigEndian.AppendUint32(out, m.Header.PreviousChainLength)
	out = binary.BigEndian.AppendUint32(out, m.Header.MessageIndex)
	return append(out, m.Ciphertext...)
}

func decodeNormal(b []byte) (domain.NormalMessage, error) {
	if len(b) <= normalHeaderSize || b[0] != messageVersion {
		return domain.NormalMessage{}, fmt.Errorf("%w: bad message header", ErrMalformedMessage)
	}
	var m domain.NormalMessage
	copy(m.Header.DiffieHellmanPublicKey[:], b[1:33])
	m.Header.PreviousChainLength = binary.BigEndian.Uint32(b[33:37])
	m.Header.MessageIndex = binary.BigEndian.Uint32(b[37:41])
	m.Ciphertext = append([]byte(nil), b[normalHeaderSize:]...)
	return m, nil
}

func encodePreKey(keys domain.SessionKeys, inner []byte) []byte {
	out := make([]byte, 0, preKeyHeaderSize+len(inner))
	out = append(out, messageVersion)
	out = append(out, keys.OneTimeKey[:]...)
	out = append(out, keys.BaseKey[:]...)
	out = append(out, keys.IdentityKey[:]...)
	return append(out, inner...)
}
