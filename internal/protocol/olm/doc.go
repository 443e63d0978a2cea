// Package olm provides the Account/Session primitive the session-state
// manager is built on.
//
// An Account owns a Curve25519 identity key, an Ed25519 signing key and a
// pool of one-time keys. CreateOutboundSession runs the triple Diffie–Hellman
// of package x3dh against a correspondent's identity and one-time key;
// CreateInboundSession does the mirror computation from a pre-key message and
// consumes the one-time key it names. Sessions carry Double Ratchet state from
// package ratchet.
//
// # Wire format
//
// Messages travel as JSON {"type": 0|1, "body": "<base64>"}. Type 0 is a
// pre-key message, emitted by an initiator until it has decrypted a reply;
// type 1 is a normal message. Bodies are binary:
//
//	normal:  version(1) | ratchet key(32) | pn(4) | n(4) | ciphertext
//	pre-key: version(1) | one-time key(32) | base key(32) | identity key(32) | normal
//
// # Pickles
//
// Accounts and sessions are persisted as pickles produced by a pickle.Codec.
// Callers must treat them as opaque strings.
package olm
