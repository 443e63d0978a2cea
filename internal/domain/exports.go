package domain

import (
	interfaces "enigmatick/internal/domain/interfaces"
	types "enigmatick/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	CorrespondentID = types.CorrespondentID
	Fingerprint     = types.Fingerprint
	KeyID           = types.KeyID
	X25519Public    = types.X25519Public
	X25519Private   = types.X25519Private
	Ed25519Public   = types.Ed25519Public
	Ed25519Private  = types.Ed25519Private
	Identity        = types.Identity
	IdentityKeys    = types.IdentityKeys
	OneTimeKey      = types.OneTimeKey
	AccountPickle   = types.AccountPickle
	SessionKeys     = types.SessionKeys
	SessionPickle   = types.SessionPickle
	RatchetHeader   = types.RatchetHeader
	RatchetState    = types.RatchetState
	MessageType     = types.MessageType
	OlmMessage      = types.OlmMessage
	PreKeyMessage   = types.PreKeyMessage
	NormalMessage   = types.NormalMessage
	State           = types.State
)

// Message type constants re-exported from the types subpackage.
const (
	MessageTypePreKey = types.MessageTypePreKey
	MessageTypeNormal = types.MessageTypeNormal
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	AccountStore  = interfaces.AccountStore
	SessionStore  = interfaces.SessionStore
	StateTx       = interfaces.StateTx
	StateStore    = interfaces.StateStore
	SnapshotStore = interfaces.SnapshotStore
	OlmProvider   = interfaces.OlmProvider
	OlmAccount    = interfaces.OlmAccount
	OlmSession    = interfaces.OlmSession
)
