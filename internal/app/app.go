package app

import (
	"encoding/json"
	"errors"

	"enigmatick/internal/domain"
	accountsvc "enigmatick/internal/services/account"
	exchangesvc "enigmatick/internal/services/exchange"
	snapshotsvc "enigmatick/internal/services/snapshot"
)

// App is the host-facing surface. Inputs and outputs are strings; structured
// values are JSON.
type App struct {
	accounts  *accountsvc.Service
	exchange  *exchangesvc.Service
	snapshots *snapshotsvc.Service
}

// New returns an App over the given services.
func New(accounts *accountsvc.Service, exchange *exchangesvc.Service, snapshots *snapshotsvc.Service) *App {
	return &App{accounts: accounts, exchange: exchange, snapshots: snapshots}
}

// CreateAccount replaces the account with a fresh one and returns its pickle.
func (a *App) CreateAccount() (string, error) {
	return a.accounts.Create()
}

// ExportAccount returns the account pickle.
func (a *App) ExportAccount() (string, bool, error) {
	return a.accounts.Export()
}

// GetIdentityPublicKey returns the base64 Curve25519 identity key.
func (a *App) GetIdentityPublicKey() (string, bool, error) {
	return a.accounts.IdentityPublicKey()
}

// GetOneTimeKeys generates the default number of keys and returns every
// unpublished key as a JSON object of key id to public key. The returned keys
// are marked published. ok is false when there is no account.
func (a *App) GetOneTimeKeys() (string, bool, error) {
	keys, err := a.accounts.PublishOneTimeKeys(accountsvc.DefaultOneTimeKeyCount)
	if errors.Is(err, domain.ErrMissingAccount) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// CreateMessage encrypts plaintext for id and returns the wire envelope.
func (a *App) CreateMessage(id, plaintext string, identityKey, oneTimeKey *string) (string, error) {
	return a.exchange.CreateMessage(domain.CorrespondentID(id), plaintext, identityKey, oneTimeKey)
}

// DecryptMessage decrypts a pre-key envelope from id.
func (a *App) DecryptMessage(id, envelope, identityKey string) (string, error) {
	return a.exchange.DecryptMessage(domain.CorrespondentID(id), envelope, identityKey)
}

// ExportState returns the whole state as a JSON record.
func (a *App) ExportState() (string, error) {
	return a.snapshots.Export()
}

// ImportState replaces the whole state with a record from ExportState.
func (a *App) ImportState(data string) error {
	return a.snapshots.Import(data)
}
