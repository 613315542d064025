package contacts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/contacts"
	"contactpsi/internal/domain"
)

func hashes(n int) []domain.Hash {
	out := make([]domain.Hash, n)
	for i := range out {
		out[i] = domain.Hash{byte(i + 1), 0xAA}
	}
	return out
}

func TestEncodePadsWithZero(t *testing.T) {
	in := hashes(3)
	list, err := contacts.Encode(in)
	require.NoError(t, err)
	require.EqualValues(t, 3, list.Count)
	require.True(t, list.Valid())
	for i := 0; i < 3; i++ {
		require.Equal(t, in[i], list.Hashes[i])
	}
	for i := 3; i < domain.MaxContacts; i++ {
		require.True(t, list.Hashes[i].IsZero(), "slot %d", i)
	}
}

func TestEncodeFullList(t *testing.T) {
	list, err := contacts.Encode(hashes(domain.MaxContacts))
	require.NoError(t, err)
	require.EqualValues(t, domain.MaxContacts, list.Count)
	require.True(t, list.Valid())
}

func TestEncodeOverflowFails(t *testing.T) {
	_, err := contacts.Encode(hashes(domain.MaxContacts + 1))
	require.ErrorIs(t, err, contacts.ErrOverflow)
}

func TestEncodeRejectsEmptyAndZero(t *testing.T) {
	_, err := contacts.Encode(nil)
	require.ErrorIs(t, err, contacts.ErrEmpty)

	in := hashes(2)
	in[1] = domain.Hash{}
	_, err = contacts.Encode(in)
	require.ErrorIs(t, err, contacts.ErrZeroHash)
}

func TestDedupKeepsFirst(t *testing.T) {
	a, b := domain.Hash{1}, domain.Hash{2}
	require.Equal(t, []domain.Hash{a, b}, contacts.Dedup([]domain.Hash{a, b, a, b, a}))
}

func TestValidDetectsBadPadding(t *testing.T) {
	list, err := contacts.Encode(hashes(2))
	require.NoError(t, err)
	list.Hashes[5] = domain.Hash{9}
	require.False(t, list.Valid())
}
