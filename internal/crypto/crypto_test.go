package crypto_test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"testing"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
)

func TestParseCurve25519_AcceptsPaddedAndUnpadded(t *testing.T) {
	_, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, s := range []string{
		base64.RawStdEncoding.EncodeToString(pub[:]),
		base64.StdEncoding.EncodeToString(pub[:]),
	} {
		got, err := crypto.ParseCurve25519(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got != pub {
			t.Fatalf("parse %q: key mismatch", s)
		}
	}
	if crypto.B64(pub[:]) != pub.String() {
		t.Fatal("B64 and key String disagree")
	}
}

func TestParseCurve25519_Rejects(t *testing.T) {
	for _, s := range []string{"", "AAAA", "not base64!", base64.RawStdEncoding.EncodeToString(make([]byte, 33))} {
		if _, err := crypto.ParseCurve25519(s); !errors.Is(err, domain.ErrInvalidKeyEncoding) {
			t.Fatalf("parse %q: want ErrInvalidKeyEncoding, got %v", s, err)
		}
	}
}

func TestDH_Agrees(t *testing.T) {
	aPriv, aPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	bPriv, bPub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	ab, err := crypto.DH(aPriv, bPub)
	if err != nil {
		t.Fatalf("dh: %v", err)
	}
	ba, err := crypto.DH(bPriv, aPub)
	if err != nil {
		t.Fatalf("dh: %v", err)
	}
	if ab != ba {
		t.Fatal("shared secrets differ")
	}
}

func TestDH_RejectsLowOrderPoint(t *testing.T) {
	priv, _, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var zero domain.X25519Public
	if _, err := crypto.DH(priv, zero); !errors.Is(err, crypto.ErrLowOrderPoint) {
		t.Fatalf("want ErrLowOrderPoint, got %v", err)
	}
}

func TestGenerateEd25519_PublicMatchesPrivate(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	derived := ed25519.PrivateKey(priv[:]).Public().(ed25519.PublicKey)
	if !bytes.Equal(derived, pub[:]) {
		t.Fatal("public key does not match private key")
	}
}

func TestFingerprint_Stable(t *testing.T) {
	fp := crypto.Fingerprint([]byte{1, 2, 3})
	if len(fp) != 20 || fp != crypto.Fingerprint([]byte{1, 2, 3}) {
		t.Fatalf("unexpected fingerprint %q", fp)
	}
}

func TestCheckPassphrase(t *testing.T) {
	if err := crypto.CheckPassphrase("Correct-Horse-42!"); err != nil {
		t.Fatalf("strong passphrase rejected: %v", err)
	}
	for _, p := range []string{"short", "alllowercase-1234", "NoDigitsHere!!", "NoSymbols12345"} {
		if !errors.Is(crypto.CheckPassphrase(p), crypto.ErrWeakPassphrase) {
			t.Fatalf("weak passphrase %q accepted", p)
		}
	}
}
