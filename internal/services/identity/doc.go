// Package identity manages creation, encryption and loading of the local
// party identity.
//
// It enforces passphrase policy, generates X25519 and Ed25519 key pairs, and
// persists them via the domain.IdentityStore. The X25519 public key is how a
// party is known inside a discovery session.
package identity
