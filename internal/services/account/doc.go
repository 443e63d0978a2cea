// Package account manages the single local account held in the shared state.
//
// It creates, imports and exports the account pickle, grows the one-time key
// pool and tracks which keys have been published. Every operation is one
// transaction: the account is unpickled, changed, re-pickled and written back,
// or the state is left as it was.
package account
