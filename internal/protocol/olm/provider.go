package olm

import (
	"time"

	"enigmatick/internal/domain"
	"enigmatick/internal/pickle"
)

// Provider creates and restores accounts and sessions using one pickle codec.
type Provider struct {
	codec *pickle.Codec
	now   func() time.Time
}

// NewProvider returns a Provider. A nil codec produces plain JSON pickles.
func NewProvider(codec *pickle.Codec) *Provider {
	if codec == nil {
		codec = &pickle.Codec{}
	}
	return &Provider{codec: codec, now: time.Now}
}

// NewAccount generates a new account with an empty one-time key pool.
func (p *Provider) NewAccount() (domain.OlmAccount, error) {
	return newAccount(p.codec, p.now)
}

// UnpickleAccount restores an account. Errors wrap domain.ErrDeserialization.
func (p *Provider) UnpickleAccount(s string) (domain.OlmAccount, error) {
	var ap domain.AccountPickle
	if err := p.codec.Decode(s, &ap); err != nil {
		return nil, err
	}
	return accountFromPickle(ap, p.codec, p.now)
}

// UnpickleSession restores a session. Errors wrap domain.ErrDeserialization.
func (p *Provider) UnpickleSession(s string) (domain.OlmSession, error) {
	var sp domain.SessionPickle
	if err := p.codec.Decode(s, &sp); err != nil {
		return nil, err
	}
	return sessionFromPickle(sp, p.codec)
}

// Compile-time assertion that Provider implements domain.OlmProvider.
var _ domain.OlmProvider = (*Provider)(nil)
