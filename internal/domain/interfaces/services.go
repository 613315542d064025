package interfaces

import (
	"context"

	domaintypes "contactpsi/internal/domain/types"
)

// IdentityService creates, retrieves, and inspects a party's identity keys.
type IdentityService interface {
	GenerateIdentity(passphrase string) (
		domaintypes.Identity,
		domaintypes.Fingerprint,
		error,
	)
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
	FingerprintIdentity(passphrase string) (domaintypes.Fingerprint, error)
}

// SessionService drives the two-party discovery protocol. Sealed arguments
// are produced by the party client; sealed results can only be opened by the
// party whose key they carry.
type SessionService interface {
	Create(
		ctx context.Context,
		initiator domaintypes.X25519Public,
	) (domaintypes.SessionMeta, error)
	SubmitInitiator(
		ctx context.Context,
		id domaintypes.SessionID,
		contacts domaintypes.Sealed,
	) (domaintypes.Sealed, error)
	SubmitResponderAndMatch(
		ctx context.Context,
		id domaintypes.SessionID,
		contacts domaintypes.Sealed,
	) (domaintypes.Sealed, error)
	RevealInitiator(
		ctx context.Context,
		id domaintypes.SessionID,
		proof domaintypes.Sealed,
	) (domaintypes.Sealed, error)
	Status(ctx context.Context, id domaintypes.SessionID) (domaintypes.SessionMeta, error)
}
