package olm

import "errors"

var (
	// ErrMalformedMessage is returned for envelopes or bodies that do not
	// decode.
	ErrMalformedMessage = errors.New("malformed olm message")
	// ErrUnexpectedMessageType is returned when a pre-key message was needed.
	ErrUnexpectedMessageType = errors.New("unexpected olm message type")
	// ErrMismatchedIdentityKey is returned when a pre-key message names a
	// different identity key than the caller expected.
	ErrMismatchedIdentityKey = errors.New("pre-key message identity key mismatch")
	// ErrMismatchedSessionKeys is returned when a pre-key message belongs to
	// another session.
	ErrMismatchedSessionKeys = errors.New("pre-key message belongs to another session")
	// ErrMissingOneTimeKey is returned when the one-time key a pre-key message
	// names is not in the pool, e.g. because it was already consumed.
	ErrMissingOneTimeKey = errors.New("one-time key not found")
	// ErrDecryption is returned when a message fails to authenticate.
	ErrDecryption = errors.New("message failed to decrypt")
	// ErrInvalidCount is returned for non-positive key counts.
	ErrInvalidCount = errors.New("one-time key count must be positive")
)
