package olm

import (
	"fmt"
	"sort"
	"time"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/pickle"
	"enigmatick/internal/protocol/ratchet"
	"enigmatick/internal/protocol/x3dh"
	"enigmatick/internal/util/memzero"
)

const accountPickleVersion = 1

// Account is the local identity and its one-time key pool.
type Account struct {
	identity    domain.Identity
	oneTimeKeys []domain.OneTimeKey
	nextKeyID   domain.KeyID

	codec *pickle.Codec
	now   func() time.Time
}

func newAccount(codec *pickle.Codec, now func() time.Time) (*Account, error) {
	xPriv, xPub, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}
	edPriv, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		return nil, err
	}
	return &Account{
		identity: domain.Identity{XPub: xPub, XPriv: xPriv, EdPub: edPub, EdPriv: edPriv},
		codec:    codec,
		now:      now,
	}, nil
}

func accountFromPickle(p domain.AccountPickle, codec *pickle.Codec, now func() time.Time) (*Account, error) {
	if p.Version != accountPickleVersion {
		return nil, fmt.Errorf("%w: unsupported account pickle version %d", domain.ErrDeserialization, p.Version)
	}
	pub, err := crypto.PublicX25519(p.Identity.XPriv)
	if err != nil || pub != p.Identity.XPub {
		return nil, fmt.Errorf("%w: account identity keys do not match", domain.ErrDeserialization)
	}
	return &Account{
		identity:    p.Identity,
		oneTimeKeys: p.OneTimeKeys,
		nextKeyID:   p.NextKeyID,
		codec:       codec,
		now:         now,
	}, nil
}

// IdentityKeys returns the public identity keys.
func (a *Account) IdentityKeys() domain.IdentityKeys {
	return domain.IdentityKeys{Curve25519: a.identity.XPub, Ed25519: a.identity.EdPub}
}

// GenerateOneTimeKeys adds count fresh keys to the pool.
func (a *Account) GenerateOneTimeKeys(count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}
	fresh := make([]domain.OneTimeKey, 0, count)
	for i := 0; i < count; i++ {
		priv, pub, err := crypto.GenerateX25519()
		if err != nil {
			return err
		}
		fresh = append(fresh, domain.OneTimeKey{ID: a.nextKeyID + domain.KeyID(i), Priv: priv, Pub: pub})
	}
	a.oneTimeKeys = append(a.oneTimeKeys, fresh...)
	a.nextKeyID += domain.KeyID(count)
	return nil
}

// OneTimeKeys returns every key in the pool.
func (a *Account) OneTimeKeys() map[domain.KeyID]domain.X25519Public {
	out := make(map[domain.KeyID]domain.X25519Public, len(a.oneTimeKeys))
	for _, k := range a.oneTimeKeys {
		out[k.ID] = k.Pub
	}
	return out
}

// UnpublishedOneTimeKeys returns the keys not yet marked as published.
func (a *Account) UnpublishedOneTimeKeys() map[domain.KeyID]domain.X25519Public {
	out := make(map[domain.KeyID]domain.X25519Public)
	for _, k := range a.oneTimeKeys {
		if !k.Published {
			out[k.ID] = k.Pub
		}
	}
	return out
}

// MarkKeysAsPublished flags every key in the pool as published.
func (a *Account) MarkKeysAsPublished() {
	for i := range a.oneTimeKeys {
		a.oneTimeKeys[i].Published = true
	}
}

// CreateOutboundSession starts a session with the owner of identityKey using
// one of its published one-time keys.
func (a *Account) CreateOutboundSession(
	identityKey domain.X25519Public,
	oneTimeKey domain.X25519Public,
) (domain.OlmSession, error) {
	basePriv, basePub, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(basePriv[:])

	root, err := x3dh.InitiatorRootKey(a.identity.XPriv, basePriv, identityKey, oneTimeKey)
	if err != nil {
		return nil, fmt.Errorf("outbound key agreement: %w", err)
	}
	defer memzero.Zero(root)

	st, err := ratchet.InitAsInitiator(root, oneTimeKey)
	if err != nil {
		return nil, err
	}
	return &Session{
		keys: domain.SessionKeys{
			IdentityKey: a.identity.XPub,
			BaseKey:     basePub,
			OneTimeKey:  oneTimeKey,
		},
		state:      st,
		createdUTC: a.now().Unix(),
		codec:      a.codec,
	}, nil
}

// CreateInboundSession creates a session from a pre-key message sent by the
// owner of identityKey. The one-time key it used is removed from the pool only
// when the message decrypts.
func (a *Account) CreateInboundSession(
	identityKey domain.X25519Public,
	message domain.OlmMessage,
) (domain.OlmSession, []byte, error) {
	if message.Type != domain.MessageTypePreKey {
		return nil, nil, fmt.Errorf("%w: got %s message", ErrUnexpectedMessageType, message.Type)
	}
	pk, err := DecodePreKey(message.Body)
	if err != nil {
		return nil, nil, err
	}
	if pk.IdentityKey != identityKey {
		return nil, nil, ErrMismatchedIdentityKey
	}

	idx := a.findOneTimeKey(pk.OneTimeKey)
	if idx < 0 {
		return nil, nil, ErrMissingOneTimeKey
	}
	otk := a.oneTimeKeys[idx]

	root, err := x3dh.ResponderRootKey(a.identity.XPriv, otk.Priv, pk.IdentityKey, pk.BaseKey)
	if err != nil {
		return nil, nil, fmt.Errorf("inbound key agreement: %w", err)
	}
	defer memzero.Zero(root)

	st, err := ratchet.InitAsResponder(root, otk.Priv, pk.Message.Header.DiffieHellmanPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("inbound key agreement: %w", err)
	}

	keys := domain.SessionKeys{IdentityKey: pk.IdentityKey, BaseKey: pk.BaseKey, OneTimeKey: pk.OneTimeKey}
	plaintext, err := ratchet.Decrypt(&st, associatedData(keys), pk.Message.Header, pk.Message.Ciphertext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	a.oneTimeKeys = append(a.oneTimeKeys[:idx:idx], a.oneTimeKeys[idx+1:]...)

	return &Session{
		keys:            keys,
		state:           st,
		receivedMessage: true,
		createdUTC:      a.now().Unix(),
		codec:           a.codec,
	}, plaintext, nil
}

// Pickle serialises the account.
func (a *Account) Pickle() (string, error) {
	keys := append([]domain.OneTimeKey(nil), a.oneTimeKeys...)
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return a.codec.Encode(domain.AccountPickle{
		Version:     accountPickleVersion,
		Identity:    a.identity,
		OneTimeKeys: keys,
		NextKeyID:   a.nextKeyID,
	})
}

func (a *Account) findOneTimeKey(pub domain.X25519Public) int {
	for i := range a.oneTimeKeys {
		if a.oneTimeKeys[i].Pub == pub {
			return i
		}
	}
	return -1
}

// Compile-time assertion that Account implements domain.OlmAccount.
var _ domain.OlmAccount = (*Account)(nil)
