package x3dh

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"enigmatick/internal/crypto"
	"enigmatick/internal/domain"
	"enigmatick/internal/util/memzero"
)

const (
	rootKeySize = 32
	rootKeyInfo = "enigmatick-olm-root"
)

// InitiatorRootKey derives the root key for the party creating an outbound
// session from the peer's identity key and one of its one-time keys.
func InitiatorRootKey(
	ourIdentityPriv domain.X25519Private,
	ourBasePriv domain.X25519Private,
	peerIdentityPub domain.X25519Public,
	peerOneTimePub domain.X25519Public,
) ([]byte, error) {
	dh1, err := crypto.DH(ourIdentityPriv, peerOneTimePub) // DH(IKA, OTKB)
	if err != nil {
		return nil, err
	}
	dh2, err := crypto.DH(ourBasePriv, peerIdentityPub) // DH(EKA, IKB)
	if err != nil {
		return nil, err
	}
	dh3, err := crypto.DH(ourBasePriv, peerOneTimePub) // DH(EKA, OTKB)
	if err != nil {
		return nil, err
	}
	return deriveRoot(dh1, dh2, dh3)
}

// ResponderRootKey derives the same root key on the side that owns the
// one-time key named in the pre-key message.
func ResponderRootKey(
	ourIdentityPriv domain.X25519Private,
	ourOneTimePriv domain.X25519Private,
	peerIdentityPub domain.X25519Public,
	peerBasePub domain.X25519Public,
) ([]byte, error) {
	dh1, err := crypto.DH(ourOneTimePriv, peerIdentityPub) // DH(OTKB, IKA)
	if err != nil {
		return nil, err
	}
	dh2, err := crypto.DH(ourIdentityPriv, peerBasePub) // DH(IKB, EKA)
	if err != nil {
		return nil, err
	}
	dh3, err := crypto.DH(ourOneTimePriv, peerBasePub) // DH(OTKB, EKA)
	if err != nil {
		return nil, err
	}
	return deriveRoot(dh1, dh2, dh3)
}

func deriveRoot(parts ...[32]byte) ([]byte, error) {
	dhConcat := make([]byte, 0, 32*len(parts))
	for i := range parts {
		dhConcat = append(dhConcat, parts[i][:]...)
		memzero.Zero(parts[i][:])
	}
	defer memzero.Zero(dhConcat)

	root := make([]byte, rootKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, dhConcat, nil, []byte(rootKeyInfo)), root); err != nil {
		return nil, err
	}
	return root, nil
}
