package psi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contactpsi/internal/domain"
)

func TestSelectPrimitives(t *testing.T) {
	require.Equal(t, uint8(7), selectU8(1, 7, 9))
	require.Equal(t, uint8(9), selectU8(0, 7, 9))
	require.Equal(t, uint32(0xdeadbeef), selectU32(1, 0xdeadbeef, 3))
	require.Equal(t, uint32(3), selectU32(0, 0xdeadbeef, 3))

	a, b := domain.Hash{1, 2, 3}, domain.Hash{0xff}
	require.Equal(t, a, selectHash(1, a, b))
	require.Equal(t, b, selectHash(0, a, b))

	k1, k2 := domain.X25519Public{9}, domain.X25519Public{31: 7}
	require.Equal(t, k1, selectKey(1, k1, k2))
	require.Equal(t, k2, selectKey(0, k1, k2))
	require.Equal(t, uint8(1), equalKey(k1, k1))
	require.Equal(t, uint8(0), equalKey(k1, k2))
}

func TestComparisonPrimitives(t *testing.T) {
	require.Equal(t, uint8(1), isZero(domain.Hash{}))
	require.Equal(t, uint8(0), isZero(domain.Hash{15: 1}))
	require.Equal(t, uint8(1), equal(domain.Hash{4}, domain.Hash{4}))
	require.Equal(t, uint8(0), equal(domain.Hash{4}, domain.Hash{5}))
	require.Equal(t, uint8(1), eqU8(3, 3))
	require.Equal(t, uint8(0), eqU8(3, 4))
	require.Equal(t, uint8(1), lessU32(0, 32))
	require.Equal(t, uint8(0), lessU32(32, 32))
	require.Equal(t, uint8(0), lessU32(0xffffffff, 1))
	require.Equal(t, uint8(1), bit(200))
	require.Equal(t, uint8(0), bit(0))
}
