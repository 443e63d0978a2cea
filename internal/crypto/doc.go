// Package crypto exposes the minimal primitives used by enigmatick.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519,
//     PublicX25519, DH)
//   - Ed25519 signing key generation (GenerateEd25519)
//   - Textual key encoding (B64, DecodeB64, ParseCurve25519)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//   - Passphrase strength policy for sealed snapshots (CheckPassphrase)
//
// # Notes
//
// All key functions return fixed-size array types defined in internal/domain
// to avoid accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on memzero.Zero when practical to reduce lifetime in
// memory.
package crypto
