package account

import (
	"errors"
	"fmt"
	"log/slog"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/logging"
)

// DefaultOneTimeKeyCount is the number of one-time keys generated when the
// caller does not ask for a specific count.
const DefaultOneTimeKeyCount = 10

// Service manages the local account.
type Service struct {
	state domain.StateStore
	olm   domain.OlmProvider
	log   *slog.Logger
}

// New returns an account service over the shared state.
func New(state domain.StateStore, olm domain.OlmProvider, log *slog.Logger) *Service {
	return &Service{state: state, olm: olm, log: logging.OrDiscard(log)}
}

// Create generates a fresh account, replacing any existing one, and returns
// its pickle.
func (s *Service) Create() (string, error) {
	var pickle string
	err := s.state.Update(func(tx domain.StateTx) error {
		acct, err := s.olm.NewAccount()
		if err != nil {
			return err
		}
		if pickle, err = acct.Pickle(); err != nil {
			return err
		}
		if _, replaced := tx.LoadAccount(); replaced {
			s.log.Info("replacing existing account")
		}
		tx.SaveAccount(pickle)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Info("account created")
	return pickle, nil
}

// Export returns the current account pickle.
func (s *Service) Export() (pickle string, ok bool, err error) {
	err = s.state.View(func(tx domain.StateTx) error {
		pickle, ok = tx.LoadAccount()
		return nil
	})
	return pickle, ok, err
}

// Import replaces the account with pickle. The pickle is stored verbatim
// once it has been shown to unpickle.
func (s *Service) Import(pickle string) error {
	if _, err := s.olm.UnpickleAccount(pickle); err != nil {
		return fmt.Errorf("import account: %w", err)
	}
	return s.state.Update(func(tx domain.StateTx) error {
		tx.SaveAccount(pickle)
		return nil
	})
}

// GenerateOneTimeKeys adds count keys to the pool and returns the whole pool,
// published or not.
func (s *Service) GenerateOneTimeKeys(count int) (map[domain.KeyID]domain.X25519Public, error) {
	var keys map[domain.KeyID]domain.X25519Public
	err := s.mutate(func(acct domain.OlmAccount) error {
		if err := acct.GenerateOneTimeKeys(count); err != nil {
			return err
		}
		keys = acct.OneTimeKeys()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("one-time keys generated", logging.KeyCount, count)
	return keys, nil
}

// MarkKeysPublished flags every unpublished key as published.
func (s *Service) MarkKeysPublished() error {
	return s.mutate(func(acct domain.OlmAccount) error {
		acct.MarkKeysAsPublished()
		return nil
	})
}

// PublishOneTimeKeys generates count keys, returns every unpublished key and
// marks them published, all in one transaction.
func (s *Service) PublishOneTimeKeys(count int) (map[domain.KeyID]domain.X25519Public, error) {
	var keys map[domain.KeyID]domain.X25519Public
	err := s.mutate(func(acct domain.OlmAccount) error {
		if err := acct.GenerateOneTimeKeys(count); err != nil {
			return err
		}
		keys = acct.UnpublishedOneTimeKeys()
		acct.MarkKeysAsPublished()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("one-time keys published", logging.KeyCount, len(keys))
	return keys, nil
}

// IdentityPublicKey returns the base64 Curve25519 identity key.
func (s *Service) IdentityPublicKey() (string, bool, error) {
	keys, _, err := s.IdentityKeys()
	if err != nil {
		if errors.Is(err, domain.ErrMissingAccount) {
			return "", false, nil
		}
		return "", false, err
	}
	return keys.Curve25519.String(), true, nil
}

// IdentityKeys returns the public identity keys and a short fingerprint of
// the Curve25519 key.
func (s *Service) IdentityKeys() (domain.IdentityKeys, domain.Fingerprint, error) {
	var keys domain.IdentityKeys
	err := s.state.View(func(tx domain.StateTx) error {
		acct, err := s.load(tx)
		if err != nil {
			return err
		}
		keys = acct.IdentityKeys()
		return nil
	})
	if err != nil {
		return domain.IdentityKeys{}, "", err
	}
	return keys, crypto.Fingerprint(keys.Curve25519.Slice()), nil
}

// mutate runs fn on the unpickled account and writes the result back.
func (s *Service) mutate(fn func(acct domain.OlmAccount) error) error {
	return s.state.Update(func(tx domain.StateTx) error {
		acct, err := s.load(tx)
		if err != nil {
			return err
		}
		if err := fn(acct); err != nil {
			return err
		}
		pickle, err := acct.Pickle()
		if err != nil {
			return err
		}
		tx.SaveAccount(pickle)
		return nil
	})
}

func (s *Service) load(tx domain.StateTx) (domain.OlmAccount, error) {
	pickle, ok := tx.LoadAccount()
	if !ok {
		return nil, domain.ErrMissingAccount
	}
	acct, err := s.olm.UnpickleAccount(pickle)
	if err != nil {
		return nil, fmt.Errorf("stored account: %w", err)
	}
	return acct, nil
}
