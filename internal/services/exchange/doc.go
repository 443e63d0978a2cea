// Package exchange decides, per correspondent, whether a message continues an
// existing session or establishes a new one.
//
// Outbound: an existing session is always reused and the remote keys are
// ignored. Without a session, the caller's remote identity key and one-time
// key establish one. Inbound: only pre-key messages are accepted; each
// establishes (or replaces) the correspondent's session and consumes the
// one-time key it names, so the account is written back with the session.
package exchange
