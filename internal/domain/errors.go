package domain

import "errors"

// Error kinds returned by the session-state manager. Callers match them with
// errors.Is; concrete errors wrap them with context.
var (
	// ErrDeserialization reports a snapshot or wire message that does not
	// parse into the expected shape.
	ErrDeserialization = errors.New("deserialization failed")

	// ErrInvalidKeyEncoding reports a key string that is not base64 of a
	// 32-byte key.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrMissingAccount reports an operation that needs a local account.
	ErrMissingAccount = errors.New("no local account")

	// ErrMissingSessionInputs reports a create-message call with neither a
	// session nor enough material to establish one.
	ErrMissingSessionInputs = errors.New("no session and no keys to establish one")

	// ErrSessionEstablishmentFailed reports an inbound pre-key message the
	// cryptographic layer rejected.
	ErrSessionEstablishmentFailed = errors.New("session establishment failed")

	// ErrUnsupportedMessageType reports an inbound message that is not a
	// pre-key message.
	ErrUnsupportedMessageType = errors.New("unsupported message type")

	// ErrBusy reports that the shared state is held by another operation.
	ErrBusy = errors.New("state is busy")

	// ErrInvalidCorrespondent reports an empty correspondent id.
	ErrInvalidCorrespondent = errors.New("invalid correspondent id")
)
