package crypto

import (
	"contactpsi/internal/domain"
	"contactpsi/internal/util/memzero"
)

// StateKey encrypts session records at rest. It never leaves the cluster.
type StateKey [32]byte

// DeriveStateKey derives the record key from the cluster's box private key.
func DeriveStateKey(clusterPriv domain.X25519Private) (StateKey, error) {
	var k StateKey
	raw, err := deriveKey(clusterPriv.Slice(), infoState)
	if err != nil {
		return k, err
	}
	copy(k[:], raw)
	memzero.Zero(raw)
	return k, nil
}

// SealState encrypts a serialised record as nonce||ciphertext.
func SealState(k StateKey, plaintext, ad []byte) ([]byte, error) {
	nonce, ct, err := sealWithKey(k[:], plaintext, ad)
	if err != nil {
		return nil, err
	}
	return append(nonce, ct...), nil
}

// OpenState decrypts a blob produced by SealState.
func OpenState(k StateKey, blob, ad []byte) ([]byte, error) {
	const nonceSize = 12
	if len(blob) < nonceSize {
		return nil, ErrOpen
	}
	return openWithKey(k[:], blob[:nonceSize], blob[nonceSize:], ad)
}

// Wipe zeroes the key.
func (k *StateKey) Wipe() { memzero.Zero(k[:]) }
