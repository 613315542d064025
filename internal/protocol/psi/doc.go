// Package psi implements the oblivious two-party set intersection and the
// four session circuits built on it.
//
// Every function that touches secret values runs a fixed sequence of
// operations. Conditions are computed as 0/1 bytes and applied through
// multiplexers (out = f ^ ((t ^ f) & mask)), never through if statements,
// so the instruction stream does not depend on list contents, occupancy
// counts or session flags.
//
// The circuits are pure functions over plaintext values. Sealing, signing
// and persistence belong to the executor that calls them.
package psi
