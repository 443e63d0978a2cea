package types

// SessionKeys are the public keys that bootstrapped a session. They are
// echoed in every pre-key message the initiator sends.
type SessionKeys struct {
	IdentityKey X25519Public `json:"identity_key"`
	BaseKey     X25519Public `json:"base_key"`
	OneTimeKey  X25519Public `json:"one_time_key"`
}

// SessionPickle is the persisted form of an Olm session.
type SessionPickle struct {
	Version         int          `json:"version"`
	SessionKeys     SessionKeys  `json:"session_keys"`
	Ratchet         RatchetState `json:"ratchet"`
	ReceivedMessage bool         `json:"received_message"`
	CreatedUTC      int64        `json:"created_utc"`
}
