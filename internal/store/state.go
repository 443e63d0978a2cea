package store

import (
	"sync"

	"enigmatick/internal/domain"
)

// State is the process-wide account and session map. Construct it once and
// hand the same pointer to every service.
type State struct {
	mu       sync.Mutex
	account  *string
	sessions map[domain.CorrespondentID]string
}

// NewState returns an empty State.
func NewState() *State {
	return &State{sessions: make(map[domain.CorrespondentID]string)}
}

// Update runs fn against a copy of the state and commits the copy when fn
// returns nil. It returns domain.ErrBusy without waiting when the state is
// held by another operation.
func (s *State) Update(fn func(tx domain.StateTx) error) error {
	if !s.mu.TryLock() {
		return domain.ErrBusy
	}
	defer s.mu.Unlock()

	tx := s.snapshot()
	if err := fn(tx); err != nil {
		return err
	}
	s.account = tx.account
	s.sessions = tx.sessions
	return nil
}

// View runs fn against a copy of the state. Writes made through tx are
// discarded.
func (s *State) View(fn func(tx domain.StateTx) error) error {
	if !s.mu.TryLock() {
		return domain.ErrBusy
	}
	defer s.mu.Unlock()

	return fn(s.snapshot())
}

func (s *State) snapshot() *stateTx {
	tx := &stateTx{sessions: copySessions(s.sessions)}
	if s.account != nil {
		a := *s.account
		tx.account = &a
	}
	return tx
}

// stateTx is the copy of the state a single transaction works on.
type stateTx struct {
	account  *string
	sessions map[domain.CorrespondentID]string
}

func copySessions(in map[domain.CorrespondentID]string) map[domain.CorrespondentID]string {
	out := make(map[domain.CorrespondentID]string, len(in))
	for id, p := range in {
		out[id] = p
	}
	return out
}

// Compile-time assertions.
var (
	_ domain.StateStore = (*State)(nil)
	_ domain.StateTx    = (*stateTx)(nil)
)
