package contacts

import (
	"errors"
	"fmt"

	"contactpsi/internal/domain"
)

var (
	// ErrOverflow is returned when more than MaxContacts hashes are supplied.
	ErrOverflow = fmt.Errorf("more than %d contacts", domain.MaxContacts)
	// ErrEmpty is returned for an empty contact list.
	ErrEmpty = errors.New("contact list is empty")
	// ErrZeroHash is returned when an input hash equals the padding sentinel.
	ErrZeroHash = errors.New("contact hash is the reserved zero value")
)

// Encode places hashes, in order, into a zero-padded ContactList.
func Encode(hashes []domain.Hash) (domain.ContactList, error) {
	var list domain.ContactList
	switch {
	case len(hashes) == 0:
		return list, ErrEmpty
	case len(hashes) > domain.MaxContacts:
		return list, fmt.Errorf("encode %d hashes: %w", len(hashes), ErrOverflow)
	}
	for i, h := range hashes {
		if h.IsZero() {
			return domain.ContactList{}, fmt.Errorf("encode slot %d: %w", i, ErrZeroHash)
		}
		list.Hashes[i] = h
	}
	list.Count = uint32(len(hashes))
	return list, nil
}

// Dedup drops repeated hashes, keeping the first occurrence. The matcher
// counts multiplicities, so callers that want distinct counts dedup first.
func Dedup(hashes []domain.Hash) []domain.Hash {
	seen := make(map[domain.Hash]struct{}, len(hashes))
	out := make([]domain.Hash, 0, len(hashes))
	for _, h := range hashes {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
