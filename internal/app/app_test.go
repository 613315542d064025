package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/app"
	"contactpsi/internal/contacts"
	"contactpsi/internal/domain"
	"contactpsi/internal/store"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, app.DefaultConfig(home), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	home := t.TempDir()
	data := `
cluster_url = "http://cluster:8090"
store_path = "db"
log_level = "debug"
json_logs = true
job_timeout = "5s"
cache_size = 8
`
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFileName), []byte(data), 0o600))

	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, "http://cluster:8090", cfg.ClusterURL)
	require.Equal(t, filepath.Join(home, "db"), cfg.StorePath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.JSONLogs)
	require.Equal(t, 5*time.Second, cfg.JobTimeout.Duration)
	require.Equal(t, 8, cfg.CacheSize)
	require.Equal(t, 4, cfg.Workers)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	cfg := app.DefaultConfig(home)
	cfg.JobTimeout.Duration = time.Minute
	require.NoError(t, app.SaveConfig(cfg))

	got, err := app.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, cfg.JobTimeout, got.JobTimeout)
	require.Equal(t, cfg.StorePath, got.StorePath)
}

func TestBadConfigFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFileName), []byte(`job_timeout = "soon"`), 0o600))
	_, err := app.LoadConfig(home)
	require.Error(t, err)
}

func TestClusterKeysAreCreatedOnce(t *testing.T) {
	ks := store.NewClusterKeyFileStore(t.TempDir(), "p")
	first, err := app.LoadOrCreateClusterKeys(ks)
	require.NoError(t, err)
	second, err := app.LoadOrCreateClusterKeys(ks)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWireRunsSessionAcrossReopen(t *testing.T) {
	ctx := context.Background()
	shared := t.TempDir()
	const pass = "Correct-Horse-9-Battery"

	open := func(home string) *app.Wire {
		cfg := app.DefaultConfig(home)
		cfg.StorePath = shared
		cfg.LogLevel = "error"
		w, err := app.NewWire(ctx, cfg)
		require.NoError(t, err)
		return w
	}

	aliceHome, bobHome := t.TempDir(), t.TempDir()
	w := open(aliceHome)
	_, _, err := w.Identity.GenerateIdentity(pass)
	require.NoError(t, err)
	alice, err := w.Party(ctx, pass)
	require.NoError(t, err)
	meta, err := w.Sessions.Create(ctx, alice.Key())
	require.NoError(t, err)
	hs, _ := contacts.HashAll([]string{"a@x.io", "b@x.io"})
	in, err := alice.EncodeAndSeal(meta.ID, domain.OpSubmitInitiator, hs)
	require.NoError(t, err)
	_, err = w.Sessions.SubmitInitiator(ctx, meta.ID, in)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w = open(bobHome)
	_, _, err = w.Identity.GenerateIdentity(pass)
	require.NoError(t, err)
	bob, err := w.Party(ctx, pass)
	require.NoError(t, err)
	hs, _ = contacts.HashAll([]string{"b@x.io", "c@x.io"})
	in, err = bob.EncodeAndSeal(meta.ID, domain.OpSubmitAndMatch, hs)
	require.NoError(t, err)
	sealed, err := w.Sessions.SubmitResponderAndMatch(ctx, meta.ID, in)
	require.NoError(t, err)
	view, err := bob.OpenResult(meta.ID, domain.OpSubmitAndMatch, sealed)
	require.NoError(t, err)
	require.EqualValues(t, 1, view.MatchCount)
	require.Equal(t, []int{0}, view.Matched())
	require.NoError(t, w.Close())
}
