package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/domain"
	"contactpsi/internal/log"
	"contactpsi/internal/store"
)

func record(id string, status domain.SessionStatus) domain.SessionRecord {
	now := time.Unix(1700000000, 0).UTC()
	return domain.SessionRecord{
		Meta: domain.SessionMeta{
			ID:        domain.SessionID(id),
			Initiator: domain.X25519Public{1},
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		},
		State: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func exerciseStore(t *testing.T, s domain.SessionStore) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	rec := record("s1", domain.StatusAwaitingInitiator)
	require.NoError(t, s.Put(ctx, rec))
	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, rec, got)

	// Callers mutating a returned record must not change what is stored.
	got.State[0] = 0
	again, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, rec.State, again.State)

	rec.Meta.Status = domain.StatusMatched
	require.NoError(t, s.Put(ctx, rec))
	got, err = s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusMatched, got.Meta.Status)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, s.Put(cctx, rec), context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, store.NewMemoryStore())
}

func TestBoltStore(t *testing.T) {
	s, err := store.NewBoltStore(context.Background(), log.NewNop(), t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := store.NewBoltStore(ctx, log.NewNop(), dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, record("s1", domain.StatusComputing)))
	require.NoError(t, s.Close())

	s, err = store.NewBoltStore(ctx, log.NewNop(), dir)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusComputing, got.Meta.Status)
}

func TestCachingStore(t *testing.T) {
	backing := store.NewMemoryStore()
	c, err := store.NewCachingStore(backing, 4)
	require.NoError(t, err)
	exerciseStore(t, c)

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, record("s2", domain.StatusAwaitingResponder)))
	require.True(t, c.Cache().Contains(domain.SessionID("s2")))

	got, err := backing.Get(ctx, "s2")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAwaitingResponder, got.Meta.Status)
}
