package x3dh_test

import (
	"bytes"
	"testing"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/protocol/x3dh"
)

// makeKeyPair returns a fresh X25519 key pair.
func makeKeyPair(t *testing.T) (domain.X25519Private, domain.X25519Public) {
	t.Helper()
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	return priv, pub
}

func TestInitiatorAndResponderRoot_Match(t *testing.T) {
	// Alice is initiator, Bob is responder.
	aliceIdentityPriv, aliceIdentityPub := makeKeyPair(t)
	bobIdentityPriv, bobIdentityPub := makeKeyPair(t)

	// Bob published a one-time key; Alice picks a base key.
	oneTimePriv, oneTimePub := makeKeyPair(t)
	basePriv, basePub := makeKeyPair(t)

	rootInitiator, err := x3dh.InitiatorRootKey(aliceIdentityPriv, basePriv, bobIdentityPub, oneTimePub)
	if err != nil {
		t.Fatalf("InitiatorRootKey: %v", err)
	}

	rootResponder, err := x3dh.ResponderRootKey(bobIdentityPriv, oneTimePriv, aliceIdentityPub, basePub)
	if err != nil {
		t.Fatalf("ResponderRootKey: %v", err)
	}

	if len(rootInitiator) != 32 {
		t.Fatalf("want 32-byte root key, got %d", len(rootInitiator))
	}
	if !bytes.Equal(rootInitiator, rootResponder) {
		t.Fatal("root keys differ")
	}
}

func TestInitiatorAndResponderRoot_WrongOneTimeKeyDiffers(t *testing.T) {
	aliceIdentityPriv, aliceIdentityPub := makeKeyPair(t)
	bobIdentityPriv, bobIdentityPub := makeKeyPair(t)

	_, oneTimePub := makeKeyPair(t)
	otherOneTimePriv, _ := makeKeyPair(t)
	basePriv, basePub := makeKeyPair(t)

	rootInitiator, err := x3dh.InitiatorRootKey(aliceIdentityPriv, basePriv, bobIdentityPub, oneTimePub)
	if err != nil {
		t.Fatalf("InitiatorRootKey: %v", err)
	}

	// Bob uses a one-time key Alice did not pick.
	rootResponder, err := x3dh.ResponderRootKey(bobIdentityPriv, otherOneTimePriv, aliceIdentityPub, basePub)
	if err != nil {
		t.Fatalf("ResponderRootKey: %v", err)
	}
	if bytes.Equal(rootInitiator, rootResponder) {
		t.Fatal("root keys unexpectedly match with a different one-time key")
	}
}

func TestInitiatorRoot_LowOrderKeyFails(t *testing.T) {
	identityPriv, _ := makeKeyPair(t)
	basePriv, _ := makeKeyPair(t)

	// The all-zero point is low order; X25519 must refuse it.
	var zero domain.X25519Public
	if _, err := x3dh.InitiatorRootKey(identityPriv, basePriv, zero, zero); err == nil {
		t.Fatal("expected error for low-order public key")
	}
}
