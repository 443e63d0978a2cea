package types

// OneTimeKey is a single entry of the account's one-time key pool.
type OneTimeKey struct {
	ID        KeyID         `json:"id"`
	Priv      X25519Private `json:"priv"`
	Pub       X25519Public  `json:"pub"`
	Published bool          `json:"published"`
}

// AccountPickle is the persisted form of an Olm account.
type AccountPickle struct {
	Version     int          `json:"version"`
	Identity    Identity     `json:"identity"`
	OneTimeKeys []OneTimeKey `json:"one_time_keys"`
	NextKeyID   KeyID        `json:"next_key_id"`
}
