package interfaces

import domaintypes "enigmatick/internal/domain/types"

// OlmProvider creates and restores accounts and sessions. Pickles are opaque
// to every caller of this interface.
type OlmProvider interface {
	NewAccount() (OlmAccount, error)
	UnpickleAccount(pickle string) (OlmAccount, error)
	UnpickleSession(pickle string) (OlmSession, error)
}

// OlmAccount is the local identity and its one-time key pool.
type OlmAccount interface {
	IdentityKeys() domaintypes.IdentityKeys
	GenerateOneTimeKeys(count int) error
	// OneTimeKeys returns every key in the pool, published or not.
	OneTimeKeys() map[domaintypes.KeyID]domaintypes.X25519Public
	UnpublishedOneTimeKeys() map[domaintypes.KeyID]domaintypes.X25519Public
	MarkKeysAsPublished()
	CreateOutboundSession(
		identityKey domaintypes.X25519Public,
		oneTimeKey domaintypes.X25519Public,
	) (OlmSession, error)
	// CreateInboundSession consumes the one-time key the message names and
	// returns the new session with the decrypted plaintext.
	CreateInboundSession(
		identityKey domaintypes.X25519Public,
		message domaintypes.OlmMessage,
	) (OlmSession, []byte, error)
	Pickle() (string, error)
}

// OlmSession is the ratchet state shared with one correspondent.
type OlmSession interface {
	SessionID() string
	Encrypt(plaintext []byte) (domaintypes.OlmMessage, error)
	Decrypt(message domaintypes.OlmMessage) ([]byte, error)
	Pickle() (string, error)
}
