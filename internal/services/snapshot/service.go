package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"enigmatick/internal/domain"
	"enigmatick/internal/logging"
)

const (
	keyAccount  = "pickled_account"
	keySessions = "olm_sessions"
)

// Service exports and imports the shared state.
type Service struct {
	state domain.StateStore
	olm   domain.OlmProvider
	log   *slog.Logger
}

// New returns a snapshot service over the shared state.
func New(state domain.StateStore, olm domain.OlmProvider, log *slog.Logger) *Service {
	return &Service{state: state, olm: olm, log: logging.OrDiscard(log)}
}

// Export returns the state record. olm_sessions is null when there are no
// sessions.
func (s *Service) Export() (string, error) {
	var rec domain.State
	err := s.state.View(func(tx domain.StateTx) error {
		if acct, ok := tx.LoadAccount(); ok {
			rec.PickledAccount = &acct
		}
		if sessions := tx.Sessions(); len(sessions) > 0 {
			rec.OlmSessions = sessions
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Import replaces the whole state with data. Nothing changes unless every
// pickle in data unpickles.
func (s *Service) Import(data string) error {
	rec, err := s.Parse(data)
	if err != nil {
		return err
	}
	err = s.state.Update(func(tx domain.StateTx) error {
		if rec.PickledAccount != nil {
			tx.SaveAccount(*rec.PickledAccount)
		} else {
			tx.ClearAccount()
		}
		tx.ReplaceSessions(rec.OlmSessions)
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Debug("state imported", "sessions", len(rec.OlmSessions), "account", rec.PickledAccount != nil)
	return nil
}

// Parse decodes and validates a state record without touching the state.
func (s *Service) Parse(data string) (domain.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return domain.State{}, fmt.Errorf("%w: state: %v", domain.ErrDeserialization, err)
	}
	for _, k := range []string{keyAccount, keySessions} {
		if _, ok := raw[k]; !ok {
			return domain.State{}, fmt.Errorf("%w: state: missing %q", domain.ErrDeserialization, k)
		}
	}

	var rec domain.State
	if err := json.Unmarshal(raw[keyAccount], &rec.PickledAccount); err != nil {
		return domain.State{}, fmt.Errorf("%w: %s: %v", domain.ErrDeserialization, keyAccount, err)
	}
	if err := json.Unmarshal(raw[keySessions], &rec.OlmSessions); err != nil {
		return domain.State{}, fmt.Errorf("%w: %s: %v", domain.ErrDeserialization, keySessions, err)
	}

	if rec.PickledAccount != nil {
		if _, err := s.olm.UnpickleAccount(*rec.PickledAccount); err != nil {
			return domain.State{}, fmt.Errorf("%s: %w", keyAccount, err)
		}
	}
	for id, p := range rec.OlmSessions {
		if id == "" {
			return domain.State{}, fmt.Errorf("%w: %s: empty correspondent id", domain.ErrDeserialization, keySessions)
		}
		if _, err := s.olm.UnpickleSession(p); err != nil {
			return domain.State{}, fmt.Errorf("%s[%s]: %w", keySessions, id, err)
		}
	}
	if rec.PickledAccount == nil && len(rec.OlmSessions) > 0 {
		s.log.Warn("imported sessions without an account", "sessions", len(rec.OlmSessions))
	}
	return rec, nil
}

// Restore imports the record held by backend. It reports whether a record
// was found.
func (s *Service) Restore(ctx context.Context, backend domain.SnapshotStore) (bool, error) {
	data, ok, err := backend.LoadSnapshot(ctx)
	if err != nil || !ok {
		return false, err
	}
	if err := s.Import(data); err != nil {
		return false, fmt.Errorf("restore snapshot: %w", err)
	}
	return true, nil
}

// Persist exports the state and writes it to backend.
func (s *Service) Persist(ctx context.Context, backend domain.SnapshotStore) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	return backend.SaveSnapshot(ctx, data)
}
