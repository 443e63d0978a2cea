package olm

import (
	"crypto/sha256"
	"fmt"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/pickle"
	"enigmatick/internal/protocol/ratchet"
)

const sessionPickleVersion = 1

// Session is the ratchet state shared with one correspondent.
type Session struct {
	keys            domain.SessionKeys
	state           domain.RatchetState
	receivedMessage bool
	createdUTC      int64

	codec *pickle.Codec
}

func sessionFromPickle(p domain.SessionPickle, codec *pickle.Codec) (*Session, error) {
	if p.Version != sessionPickleVersion {
		return nil, fmt.Errorf("%w: unsupported session pickle version %d", domain.ErrDeserialization, p.Version)
	}
	if len(p.Ratchet.RootKey) != 32 {
		return nil, fmt.Errorf("%w: session root key missing", domain.ErrDeserialization)
	}
	if p.Ratchet.SkippedKeys == nil {
		p.Ratchet.SkippedKeys = make(map[string][]byte)
	}
	return &Session{
		keys:            p.SessionKeys,
		state:           p.Ratchet,
		receivedMessage: p.ReceivedMessage,
		createdUTC:      p.CreatedUTC,
		codec:           codec,
	}, nil
}

// SessionID is a stable identifier derived from the keys that created the
// session. Both sides compute the same value.
func (s *Session) SessionID() string {
	h := sha256.New()
	h.Write(s.keys.IdentityKey[:])
	h.Write(s.keys.BaseKey[:])
	h.Write(s.keys.OneTimeKey[:])
	return crypto.B64(h.Sum(nil))
}

// Keys returns the keys that created the session.
func (s *Session) Keys() domain.SessionKeys { return s.keys }

// Encrypt advances the sending chain. Until a reply has been decrypted the
// result is a pre-key message.
func (s *Session) Encrypt(plaintext []byte) (domain.OlmMessage, error) {
	header, ct, err := ratchet.Encrypt(&s.state, associatedData(s.keys), plaintext)
	if err != nil {
		return domain.OlmMessage{}, err
	}
	inner := encodeNormal(domain.NormalMessage{Header: header, Ciphertext: ct})
	if s.receivedMessage {
		return domain.OlmMessage{Type: domain.MessageTypeNormal, Body: crypto.B64(inner)}, nil
	}
	return domain.OlmMessage{
		Type: domain.MessageTypePreKey,
		Body: crypto.B64(encodePreKey(s.keys, inner)),
	}, nil
}

// Decrypt opens a message from the correspondent. A pre-key message must
// carry this session's keys.
func (s *Session) Decrypt(message domain.OlmMessage) ([]byte, error) {
	var normal domain.NormalMessage
	switch message.Type {
	case domain.MessageTypePreKey:
		pk, err := DecodePreKey(message.Body)
		if err != nil {
			return nil, err
		}
		if pk.IdentityKey != s.keys.IdentityKey || pk.BaseKey != s.keys.BaseKey || pk.OneTimeKey != s.keys.OneTimeKey {
			return nil, ErrMismatchedSessionKeys
		}
		normal = pk.Message
	case domain.MessageTypeNormal:
		var err error
		if normal, err = DecodeNormal(message.Body); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedMessageType, message.Type)
	}

	pt, err := ratchet.Decrypt(&s.state, associatedData(s.keys), normal.Header, normal.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	s.receivedMessage = true
	return pt, nil
}

// Pickle serialises the session.
func (s *Session) Pickle() (string, error) {
	return s.codec.Encode(domain.SessionPickle{
		Version:         sessionPickleVersion,
		SessionKeys:     s.keys,
		Ratchet:         s.state,
		ReceivedMessage: s.receivedMessage,
		CreatedUTC:      s.createdUTC,
	})
}

// associatedData binds every message to the keys that created the session.
func associatedData(keys domain.SessionKeys) []byte {
	out := make([]byte, 0, 96)
	out = append(out, keys.IdentityKey[:]...)
	out = append(out, keys.BaseKey[:]...)
	return append(out, keys.OneTimeKey[:]...)
}

// Compile-time assertion that Session implements domain.OlmSession.
var _ domain.OlmSession = (*Session)(nil)
