// Package commands defines the enigmatick CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init                 Write a default config.toml
//   - account create       Create (or replace) the local account
//   - account export       Print the account pickle
//   - account import       Replace the account with a pickle
//   - identity             Print the identity keys and fingerprint
//   - keys generate        Grow the one-time key pool
//   - keys publish         Generate keys and print the unpublished ones
//   - keys mark-published  Flag every key as published
//   - encrypt              Encrypt a message for a correspondent
//   - decrypt              Decrypt a pre-key message from a correspondent
//   - sessions             List correspondents with a session
//   - state export         Print the state record
//   - state import         Replace the state with a record
//
// # Implementation
//
// The root command loads config.toml, builds the dependency graph and
// restores the persisted state snapshot before any subcommand runs. Commands
// that change the state mark it dirty; the snapshot is written back after
// they succeed.
package commands
