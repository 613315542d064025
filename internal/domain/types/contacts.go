package types

import (
	"encoding/hex"
	"fmt"
)

// MaxContacts is the fixed capacity of a contact list. Every list and every
// result view has exactly this many slots.
const MaxContacts = 32

// HashSize is the width of a contact hash in bytes.
const HashSize = 16

// Hash is a 128-bit contact identifier. The zero value is the empty-slot
// sentinel and never a real contact.
type Hash [HashSize]byte

// IsZero reports whether h is the sentinel.
func (h Hash) IsZero() bool { return h == Hash{} }

// String returns the hex form of the hash.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// MarshalText encodes the hash as hex.
func (h Hash) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(HashSize))
	hex.Encode(out, h[:])
	return out, nil
}

// UnmarshalText decodes a hex hash.
func (h *Hash) UnmarshalText(text []byte) error {
	if hex.DecodedLen(len(text)) != HashSize {
		return fmt.Errorf("hash: want %d hex chars, got %d", hex.EncodedLen(HashSize), len(text))
	}
	_, err := hex.Decode(h[:], text)
	return err
}

// ParseHash decodes a hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	return h, h.UnmarshalText([]byte(s))
}

// ContactList is a party's encoded submission: Count real hashes followed by
// zero padding up to MaxContacts.
type ContactList struct {
	Hashes [MaxContacts]Hash `json:"hashes"`
	Count  uint32            `json:"count"`
}

// Valid reports whether the list holds 1..MaxContacts non-zero hashes in its
// first Count slots and the sentinel everywhere else.
func (l ContactList) Valid() bool {
	if l.Count == 0 || l.Count > MaxContacts {
		return false
	}
	for i, h := range l.Hashes {
		if (uint32(i) < l.Count) == h.IsZero() {
			return false
		}
	}
	return true
}
