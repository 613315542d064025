package interfaces

import (
	"context"

	domaintypes "contactpsi/internal/domain/types"
)

// IdentityStore persists a party's long-term identity keys.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// SessionStore is the durable record store, keyed by session id. Get returns
// an error wrapping ErrSessionNotFound when no record exists.
type SessionStore interface {
	Get(ctx context.Context, id domaintypes.SessionID) (domaintypes.SessionRecord, error)
	Put(ctx context.Context, record domaintypes.SessionRecord) error
	Close() error
}

// ClusterKeyStore keeps the cluster key material for in-process execution.
type ClusterKeyStore interface {
	SaveClusterKeys(keys domaintypes.ClusterKeys) error
	LoadClusterKeys() (domaintypes.ClusterKeys, bool, error)
}
