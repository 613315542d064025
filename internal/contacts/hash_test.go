package contacts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/contacts"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Alice@Example.COM ": "alice@example.com",
		"+1 (555) 010-9999":    "+15550109999",
		"555.010.9999":         "5550109999",
		"Bob Smith":            "bob smith",
	}
	for in, want := range cases {
		require.Equal(t, want, contacts.Normalize(in), in)
	}
}

func TestHashContactIsStableAndNonZero(t *testing.T) {
	a := contacts.HashContact("alice@example.com")
	b := contacts.HashContact("  ALICE@example.com")
	require.Equal(t, a, b)
	require.False(t, a.IsZero())
	require.NotEqual(t, a, contacts.HashContact("bob@example.com"))
}

func TestHashAllDropsDuplicatesAndBlanks(t *testing.T) {
	hs, origin := contacts.HashAll([]string{"a@x.io", "", "A@X.io", "b@x.io"})
	require.Len(t, hs, 2)
	require.Equal(t, []string{"a@x.io", "b@x.io"}, origin)
	require.Equal(t, contacts.HashContact("b@x.io"), hs[1])

	hs, origin = contacts.HashAll([]string{"+1 (555) 010", "c@x.io", "+1-555-010", "C@x.io"})
	require.Equal(t, []string{"+1 (555) 010", "c@x.io"}, origin)
	require.Equal(t, contacts.Dedup(hs), hs)
	require.Equal(t, contacts.HashContact("+1555010"), hs[0])
}
