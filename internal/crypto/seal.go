package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"contactpsi/internal/domain"
	"contactpsi/internal/util/memzero"
)

// HKDF info strings. Inputs and outputs use distinct keys even though both
// come from the same agreement.
const (
	InfoInput  = "contactpsi/v1/input"
	InfoOutput = "contactpsi/v1/output"
	infoState  = "contactpsi/v1/state"
)

// ErrOpen is returned when a sealed payload fails authentication.
var ErrOpen = errors.New("sealed payload failed authentication")

// AD joins fields into associated data. Each field is length-prefixed so
// ("ab","c") and ("a","bc") never collide.
func AD(fields ...string) []byte {
	var b strings.Builder
	for _, f := range fields {
		n := len(f)
		b.WriteByte(byte(n >> 8))
		b.WriteByte(byte(n))
		b.WriteString(f)
	}
	return []byte(b.String())
}

// BindAD is the associated data for a party payload of one operation.
func BindAD(id domain.SessionID, op domain.Op) []byte {
	return AD(id.String(), string(op))
}

// Seal encrypts plaintext for the holder of peer's private key. The caller
// supplies its own private key; the recipient opens with the mirror pair.
func Seal(priv domain.X25519Private, peer domain.X25519Public, info string, plaintext, ad []byte) (nonce, ct []byte, err error) {
	key, err := boxKey(priv, peer, info)
	if err != nil {
		return nil, nil, err
	}
	defer memzero.Zero(key)
	return sealWithKey(key, plaintext, ad)
}

// Open reverses Seal.
func Open(priv domain.X25519Private, peer domain.X25519Public, info string, nonce, ct, ad []byte) ([]byte, error) {
	key, err := boxKey(priv, peer, info)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	return openWithKey(key, nonce, ct, ad)
}

func boxKey(priv domain.X25519Private, peer domain.X25519Public, info string) ([]byte, error) {
	shared, err := DH(priv, peer)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(shared[:])
	return deriveKey(shared[:], info)
}

func deriveKey(secret []byte, info string) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func sealWithKey(key, plaintext, ad []byte) (nonce, ct []byte, err error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, aead.Seal(nil, nonce, plaintext, ad), nil
}

func openWithKey(key, nonce, ct, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrOpen
	}
	pt, err := aead.Open(nil, nonce, ct, ad)
	if err != nil {
		return nil, ErrOpen
	}
	return pt, nil
}
