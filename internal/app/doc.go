// Package app wires application dependencies for the CLI and exposes the
// host-facing operations.
//
// LoadConfig reads config.toml and ENIGMATICK_* variables through viper.
// NewWire builds the single store.State, the pickle codec, the Olm provider,
// the services and the snapshot backend from that Config. App is the string
// and JSON surface over those services: create and export the account, hand
// out one-time keys, encrypt and decrypt, and export or import the state.
package app
