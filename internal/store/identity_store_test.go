package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/domain"
	"contactpsi/internal/store"
)

func TestIdentity_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	pass := "pass"

	var ids domain.IdentityStore = store.NewIdentityFileStore(home)

	id := domain.Identity{
		XPub:   domain.X25519Public{1},
		XPriv:  domain.X25519Private{2},
		EdPub:  domain.Ed25519Public{3},
		EdPriv: domain.Ed25519Private{4},
	}
	require.NoError(t, ids.SaveIdentity(pass, id))

	got, err := ids.LoadIdentity(pass)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestIdentity_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	var ids domain.IdentityStore = store.NewIdentityFileStore(home)

	id := domain.Identity{XPub: domain.X25519Public{1}, XPriv: domain.X25519Private{2}}
	require.NoError(t, ids.SaveIdentity("correct", id))

	_, err := ids.LoadIdentity("wrong")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestIdentity_Missing(t *testing.T) {
	_, err := store.NewIdentityFileStore(t.TempDir()).LoadIdentity("x")
	require.ErrorIs(t, err, store.ErrNoIdentity)
}

func TestClusterKeys_SaveLoad(t *testing.T) {
	home := t.TempDir()
	ks := store.NewClusterKeyFileStore(home, "cluster-pass")

	_, ok, err := ks.LoadClusterKeys()
	require.NoError(t, err)
	require.False(t, ok)

	keys := domain.ClusterKeys{BoxPub: domain.X25519Public{9}, SignPub: domain.Ed25519Public{8}}
	require.NoError(t, ks.SaveClusterKeys(keys))

	got, ok, err := ks.LoadClusterKeys()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, keys, got)

	_, _, err = store.NewClusterKeyFileStore(home, "other").LoadClusterKeys()
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestKeyFilesAreNotInterchangeable(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, store.NewIdentityFileStore(home).SaveIdentity("p", domain.Identity{}))
	require.NoError(t, store.NewClusterKeyFileStore(home, "p").SaveClusterKeys(domain.ClusterKeys{}))

	_, err := store.NewIdentityFileStore(home).LoadIdentity("p")
	require.NoError(t, err)
	_, _, err = store.NewClusterKeyFileStore(home, "p").LoadClusterKeys()
	require.NoError(t, err)
}
