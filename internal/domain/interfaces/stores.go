package interfaces

import (
	"context"

	domaintypes "enigmatick/internal/domain/types"
)

// AccountStore is the account slot of the shared state.
type AccountStore interface {
	LoadAccount() (pickle string, ok bool)
	SaveAccount(pickle string)
	ClearAccount()
}

// SessionStore maps correspondents to session pickles.
type SessionStore interface {
	LoadSession(id domaintypes.CorrespondentID) (pickle string, ok bool)
	SaveSession(id domaintypes.CorrespondentID, pickle string)
	Sessions() map[domaintypes.CorrespondentID]string
	ReplaceSessions(sessions map[domaintypes.CorrespondentID]string)
	SessionIDs() []domaintypes.CorrespondentID
}

// StateTx is one transaction over the shared state. It is only valid inside
// the callback it was handed to.
type StateTx interface {
	AccountStore
	SessionStore
}

// StateStore guards the process-wide state. Both methods fail with
// domain.ErrBusy instead of waiting when another operation holds the state.
type StateStore interface {
	// Update runs fn against a copy of the state and commits it when fn
	// returns nil.
	Update(fn func(tx StateTx) error) error
	// View runs fn against the state without committing anything.
	View(fn func(tx StateTx) error) error
}

// SnapshotStore persists an exported state record between processes.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (snapshot string, ok bool, err error)
	SaveSnapshot(ctx context.Context, snapshot string) error
	Close() error
}
