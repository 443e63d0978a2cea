package crypto

import (
	"fmt"
	"unicode"
)

// MinPassphraseLength is the minimum number of characters of a passphrase.
const MinPassphraseLength = 12

// ErrWeakPassphrase is returned when a passphrase fails the strength policy.
var ErrWeakPassphrase = fmt.Errorf(
	"passphrase is too weak (must be at least %d characters and include upper, lower, "+
		"number, and symbol)",
	MinPassphraseLength,
)

// CheckPassphrase enforces a basic strength policy on passphrases that seal
// the state snapshot at rest.
func CheckPassphrase(passphrase string) error {
	var hasUpper, hasLower, hasDigit, hasSymbol bool

	if len(passphrase) < MinPassphraseLength {
		return ErrWeakPassphrase
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !(hasUpper && hasLower && hasDigit && hasSymbol) {
		return ErrWeakPassphrase
	}
	return nil
}
