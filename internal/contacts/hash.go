package contacts

import (
	"crypto/sha256"
	"strings"
	"unicode"

	"contactpsi/internal/domain"
)

// Normalize canonicalises a contact string so both parties hash the same
// bytes for the same person. E-mail addresses are lower-cased; anything
// that looks like a phone number keeps only its digits and a leading '+'.
func Normalize(contact string) string {
	c := strings.TrimSpace(contact)
	if strings.Contains(c, "@") {
		return strings.ToLower(c)
	}
	if !looksLikePhone(c) {
		return strings.ToLower(c)
	}
	var b strings.Builder
	for i, r := range c {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits > 0
}

// HashContact returns the upper 128 bits of SHA-256 over the normalised
// contact. A digest whose upper half is all zero is remapped to its lower
// half so the sentinel never appears.
func HashContact(contact string) domain.Hash {
	sum := sha256.Sum256([]byte(Normalize(contact)))
	var h domain.Hash
	copy(h[:], sum[:domain.HashSize])
	if h.IsZero() {
		copy(h[:], sum[domain.HashSize:])
		h[domain.HashSize-1] |= 1
	}
	return h
}

// HashAll hashes and dedups contacts, returning the hashes alongside the
// contact string each one came from, index for index. A repeated contact
// keeps the label of its first occurrence.
func HashAll(contacts []string) ([]domain.Hash, []string) {
	all := make([]domain.Hash, 0, len(contacts))
	first := make(map[domain.Hash]string, len(contacts))
	for _, c := range contacts {
		if strings.TrimSpace(c) == "" {
			continue
		}
		h := HashContact(c)
		if _, ok := first[h]; !ok {
			first[h] = c
		}
		all = append(all, h)
	}
	hashes := Dedup(all)
	origin := make([]string, len(hashes))
	for i, h := range hashes {
		origin[i] = first[h]
	}
	return hashes, origin
}
