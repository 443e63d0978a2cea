package exchange

import (
	"errors"
	"fmt"
	"log/slog"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/logging"
	"enigmatick/internal/protocol/olm"
)

// Service encrypts and decrypts messages against the shared state.
type Service struct {
	state domain.StateStore
	olm   domain.OlmProvider
	log   *slog.Logger
}

// New returns an exchange service over the shared state.
func New(state domain.StateStore, olm domain.OlmProvider, log *slog.Logger) *Service {
	return &Service{state: state, olm: olm, log: logging.OrDiscard(log)}
}

// CreateMessage encrypts plaintext for id and returns the wire envelope.
//
// remoteIdentityKey and remoteOneTimeKey are only consulted when no session
// exists for id; both must then be given and an account must exist.
func (s *Service) CreateMessage(
	id domain.CorrespondentID,
	plaintext string,
	remoteIdentityKey, remoteOneTimeKey *string,
) (string, error) {
	if id == "" {
		return "", domain.ErrInvalidCorrespondent
	}

	var envelope string
	err := s.state.Update(func(tx domain.StateTx) error {
		sess, path, err := s.outboundSession(tx, id, remoteIdentityKey, remoteOneTimeKey)
		if err != nil {
			return err
		}
		msg, err := sess.Encrypt([]byte(plaintext))
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		pickle, err := sess.Pickle()
		if err != nil {
			return err
		}
		if envelope, err = olm.MarshalMessage(msg); err != nil {
			return err
		}
		tx.SaveSession(id, pickle)

		s.log.Debug("message created",
			logging.KeyCorrespondent, id,
			logging.KeyPath, path,
			logging.KeySessionID, sess.SessionID(),
			"type", msg.Type.String(),
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	return envelope, nil
}

// outboundSession returns the session to encrypt with and the path taken.
func (s *Service) outboundSession(
	tx domain.StateTx,
	id domain.CorrespondentID,
	remoteIdentityKey, remoteOneTimeKey *string,
) (domain.OlmSession, string, error) {
	if pickle, ok := tx.LoadSession(id); ok {
		sess, err := s.olm.UnpickleSession(pickle)
		if err != nil {
			return nil, "", fmt.Errorf("stored session for %s: %w", id, err)
		}
		return sess, "existing", nil
	}

	acctPickle, haveAccount := tx.LoadAccount()
	if remoteIdentityKey == nil || remoteOneTimeKey == nil || !haveAccount {
		return nil, "", domain.ErrMissingSessionInputs
	}

	identityKey, err := crypto.ParseCurve25519(*remoteIdentityKey)
	if err != nil {
		return nil, "", fmt.Errorf("remote identity key: %w", err)
	}
	oneTimeKey, err := crypto.ParseCurve25519(*remoteOneTimeKey)
	if err != nil {
		return nil, "", fmt.Errorf("remote one-time key: %w", err)
	}

	acct, err := s.olm.UnpickleAccount(acctPickle)
	if err != nil {
		return nil, "", fmt.Errorf("stored account: %w", err)
	}
	sess, err := acct.CreateOutboundSession(identityKey, oneTimeKey)
	if errors.Is(err, crypto.ErrLowOrderPoint) {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, err)
	}
	if err != nil {
		return nil, "", fmt.Errorf("outbound session: %w", err)
	}
	s.log.Info("session established",
		logging.KeyCorrespondent, id,
		logging.KeyPath, "outbound",
		logging.KeySessionID, sess.SessionID(),
	)
	return sess, "outbound", nil
}

// DecryptMessage decrypts a pre-key envelope from id, storing the session it
// establishes and the account with its one-time key consumed.
func (s *Service) DecryptMessage(
	id domain.CorrespondentID,
	envelope string,
	remoteIdentityKey string,
) (string, error) {
	if id == "" {
		return "", domain.ErrInvalidCorrespondent
	}

	var plaintext []byte
	err := s.state.Update(func(tx domain.StateTx) error {
		acctPickle, ok := tx.LoadAccount()
		if !ok {
			return domain.ErrMissingAccount
		}
		identityKey, err := crypto.ParseCurve25519(remoteIdentityKey)
		if err != nil {
			return fmt.Errorf("remote identity key: %w", err)
		}
		msg, err := olm.ParseMessage(envelope)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrDeserialization, err)
		}
		if msg.Type != domain.MessageTypePreKey {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedMessageType, msg.Type)
		}

		acct, err := s.olm.UnpickleAccount(acctPickle)
		if err != nil {
			return fmt.Errorf("stored account: %w", err)
		}
		sess, pt, err := acct.CreateInboundSession(identityKey, msg)
		if err != nil {
			s.log.Debug("inbound session rejected", logging.KeyCorrespondent, id, "error", err)
			return fmt.Errorf("%w: %v", domain.ErrSessionEstablishmentFailed, err)
		}

		sessPickle, err := sess.Pickle()
		if err != nil {
			return err
		}
		acctPickle, err = acct.Pickle()
		if err != nil {
			return err
		}
		if _, replaced := tx.LoadSession(id); replaced {
			s.log.Info("replacing session", logging.KeyCorrespondent, id)
		}
		tx.SaveSession(id, sessPickle)
		tx.SaveAccount(acctPickle)
		plaintext = pt

		s.log.Info("session established",
			logging.KeyCorrespondent, id,
			logging.KeyPath, "inbound",
			logging.KeySessionID, sess.SessionID(),
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Sessions returns the correspondents that have a session, sorted.
func (s *Service) Sessions() ([]domain.CorrespondentID, error) {
	var ids []domain.CorrespondentID
	err := s.state.View(func(tx domain.StateTx) error {
		ids = tx.SessionIDs()
		return nil
	})
	return ids, err
}
