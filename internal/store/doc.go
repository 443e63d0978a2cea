// Package store holds enigmatick's process state and the backends that
// persist it between runs.
//
// State is the single in-memory record of the local account pickle and the
// per-correspondent session pickles. Every operation runs as one transaction
// through State.Update or State.View. Transactions never wait: when another
// operation holds the state they fail with domain.ErrBusy. Update works on a
// copy and commits it only when the callback succeeds, so a failed operation
// leaves the state exactly as it was.
//
// Pickles are opaque strings here. The store never unpickles or inspects them.
//
// The snapshot backends persist the exported state record:
//   - FileSnapshotStore writes one file atomically, optionally sealed with a
//     scrypt-derived ChaCha20-Poly1305 key
//   - BadgerSnapshotStore keeps it in an embedded Badger database
//   - RedisSnapshotStore keeps it under one Redis key
package store
