// Package pickle turns account and session records into the opaque strings
// that cross the core's boundary, and back.
//
// Without a key a pickle is the record's JSON text. With a 32-byte pickle key
// it is the unpadded base64 of nonce || ChaCha20-Poly1305(JSON). Decode fails
// with domain.ErrDeserialization on any malformed, foreign or tampered input.
package pickle
