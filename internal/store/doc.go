// Package store provides persistence for contactpsi.
//
// Session records go through domain.SessionStore. BoltStore keeps them in a
// bbolt file, MemoryStore in a map, and CachingStore fronts either with an
// ARC cache. Records are stored as JSON; the secret part of a record is
// already sealed by the cluster, so stores never see plaintext session
// state.
//
// Key material lives in small passphrase-encrypted files:
//   - Party identity keys (IdentityFileStore)
//   - Cluster keys for in-process execution (ClusterKeyFileStore)
//
// All stores are safe for concurrent use.
package store
