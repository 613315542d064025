package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/crypto"
	"contactpsi/internal/log"
	"contactpsi/internal/services/identity"
	"contactpsi/internal/store"
)

const strong = "Correct-Horse-9-Battery"

func TestGenerateAndLoad(t *testing.T) {
	svc := identity.New(store.NewIdentityFileStore(t.TempDir()), log.NewNop())

	id, fp, err := svc.GenerateIdentity(strong)
	require.NoError(t, err)
	require.Equal(t, crypto.Fingerprint(id.XPub.Slice()), fp)

	pub, err := crypto.PublicX25519(id.XPriv)
	require.NoError(t, err)
	require.Equal(t, id.XPub, pub)

	got, err := svc.LoadIdentity(strong)
	require.NoError(t, err)
	require.Equal(t, id, got)

	fp2, err := svc.FingerprintIdentity(strong)
	require.NoError(t, err)
	require.Equal(t, fp, fp2)
}

func TestWeakPassphraseRejected(t *testing.T) {
	svc := identity.New(store.NewIdentityFileStore(t.TempDir()), log.NewNop())
	for _, p := range []string{"short", "alllowercase123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, _, err := svc.GenerateIdentity(p)
		require.ErrorIs(t, err, identity.ErrWeakPassphrase, p)
	}
}
