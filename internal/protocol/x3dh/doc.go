// Package x3dh implements the triple Diffie–Hellman key agreement that
// bootstraps an Olm session between two accounts.
//
// # Overview
//
// The initiator needs only public material from the responder: its Curve25519
// identity key and one of its published one-time keys. Unlike Signal's X3DH
// there is no signed pre-key; the one-time key plays that role and is consumed
// by the responder when the first message arrives.
//
// # Flows
//
// Initiator:
//  1. Generate an ephemeral base key pair (EKA).
//  2. Compute DH(IKA, OTKB), DH(EKA, IKB), DH(EKA, OTKB).
//  3. HKDF the concatenation to a 32-byte root key.
//  4. Send IKA, EKA and OTKB in every pre-key message until a reply arrives.
//
// Responder:
//  1. Look up the private half of OTKB.
//  2. Compute DH(OTKB, IKA), DH(IKB, EKA), DH(OTKB, EKA).
//  3. HKDF the same transcript to the identical root key.
//
// # Errors
//
// Errors wrap lower-level X25519 failures, such as low-order public keys.
package x3dh
