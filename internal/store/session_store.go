package store

import (
	"sort"

	"enigmatick/internal/domain"
)

// LoadSession returns the session pickle stored for id.
func (tx *stateTx) LoadSession(id domain.CorrespondentID) (string, bool) {
	p, ok := tx.sessions[id]
	return p, ok
}

// SaveSession stores pickle for id, overwriting any previous session.
func (tx *stateTx) SaveSession(id domain.CorrespondentID, pickle string) {
	tx.sessions[id] = pickle
}

// Sessions returns a copy of every stored session.
func (tx *stateTx) Sessions() map[domain.CorrespondentID]string {
	return copySessions(tx.sessions)
}

// ReplaceSessions discards every stored session and stores sessions instead.
func (tx *stateTx) ReplaceSessions(sessions map[domain.CorrespondentID]string) {
	tx.sessions = copySessions(sessions)
}

// SessionIDs returns the stored correspondent ids in sorted order.
func (tx *stateTx) SessionIDs() []domain.CorrespondentID {
	ids := make([]domain.CorrespondentID, 0, len(tx.sessions))
	for id := range tx.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
