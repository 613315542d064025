package domain

import (
	"errors"

	interfaces "contactpsi/internal/domain/interfaces"
	types "contactpsi/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID          = types.SessionID
	JobID              = types.JobID
	Fingerprint        = types.Fingerprint
	Party              = types.Party
	Hash               = types.Hash
	ContactList        = types.ContactList
	SessionStatus      = types.SessionStatus
	SessionState       = types.SessionState
	SessionMeta        = types.SessionMeta
	SessionRecord      = types.SessionRecord
	MatchResult        = types.MatchResult
	SubmitConfirmation = types.SubmitConfirmation
	Op                 = types.Op
	Sealed             = types.Sealed
	Job                = types.Job
	Output             = types.Output
	Completion         = types.Completion
	Identity           = types.Identity
	ClusterKeys        = types.ClusterKeys
	ClusterInfo        = types.ClusterInfo
	X25519Public       = types.X25519Public
	X25519Private      = types.X25519Private
	Ed25519Public      = types.Ed25519Public
	Ed25519Private     = types.Ed25519Private
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	SessionService  = interfaces.SessionService
	IdentityStore   = interfaces.IdentityStore
	SessionStore    = interfaces.SessionStore
	ClusterKeyStore = interfaces.ClusterKeyStore
	Executor        = interfaces.Executor
)

// Constants re-exported from the types subpackage.
const (
	MaxContacts = types.MaxContacts
	HashSize    = types.HashSize

	PartyInitiator = types.PartyInitiator
	PartyResponder = types.PartyResponder

	StatusAwaitingInitiator = types.StatusAwaitingInitiator
	StatusAwaitingResponder = types.StatusAwaitingResponder
	StatusComputing         = types.StatusComputing
	StatusMatched           = types.StatusMatched

	OpInitSession     = types.OpInitSession
	OpSubmitInitiator = types.OpSubmitInitiator
	OpSubmitAndMatch  = types.OpSubmitAndMatch
	OpRevealInitiator = types.OpRevealInitiator
)

// ParseHash decodes a hex string into a Hash.
var ParseHash = types.ParseHash

// ErrSessionNotFound is returned by stores when no record exists for an id.
var ErrSessionNotFound = errors.New("session not found")
