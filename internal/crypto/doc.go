// Package crypto exposes the primitives used by contactpsi.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Party and cluster key bundles (GenerateIdentity, GenerateClusterKeys)
//   - Sealing between a party and the cluster (Seal, Open)
//   - Record encryption at rest (DeriveStateKey, SealState, OpenState)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Sealed payloads use X25519 for agreement, HKDF-SHA256 to derive a
// direction-specific key and ChaCha20-Poly1305 with a random nonce.
// Associated data binds every payload to its session and operation, so a
// blob lifted from one session cannot be replayed into another.
package crypto
