package psi

import (
	"crypto/subtle"

	"contactpsi/internal/domain"
)

// Conditions are bytes holding 0 or 1. Every helper below assumes that and
// produces the same.

func selectU8(cond, t, f uint8) uint8 {
	return f ^ ((t ^ f) & -cond)
}

func selectU32(cond uint8, t, f uint32) uint32 {
	return f ^ ((t ^ f) & -uint32(cond))
}

func selectHash(cond uint8, t, f domain.Hash) domain.Hash {
	m := -cond
	var out domain.Hash
	for k := range out {
		out[k] = f[k] ^ ((t[k] ^ f[k]) & m)
	}
	return out
}

func selectKey(cond uint8, t, f domain.X25519Public) domain.X25519Public {
	m := -cond
	var out domain.X25519Public
	for k := range out {
		out[k] = f[k] ^ ((t[k] ^ f[k]) & m)
	}
	return out
}

func equalKey(a, b domain.X25519Public) uint8 {
	return uint8(subtle.ConstantTimeCompare(a[:], b[:]))
}

func isZero(h domain.Hash) uint8 {
	var acc byte
	for _, b := range h {
		acc |= b
	}
	return uint8(subtle.ConstantTimeByteEq(acc, 0))
}

func equal(a, b domain.Hash) uint8 {
	return uint8(subtle.ConstantTimeCompare(a[:], b[:]))
}

func eqU8(a, b uint8) uint8 {
	return uint8(subtle.ConstantTimeByteEq(a, b))
}

// lessU32 reports a < b.
func lessU32(a, b uint32) uint8 {
	return uint8((uint64(a) - uint64(b)) >> 63)
}

// bit maps any byte to 0 or 1.
func bit(b uint8) uint8 {
	return 1 ^ eqU8(b, 0)
}
