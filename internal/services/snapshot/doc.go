// Package snapshot exports and imports the whole state as one JSON record and
// moves that record to and from a persistence backend.
//
// The record has exactly two keys:
//
//	{"pickled_account": string|null, "olm_sessions": {id: string}|null}
//
// Pickles inside it are stored verbatim, so exporting an imported record
// reproduces it byte for byte.
package snapshot
