package types

// SessionID identifies one two-party discovery session.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// JobID identifies one unit of work submitted to the computation cluster.
type JobID string

// String returns the string form of the job identifier.
func (id JobID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// Party numbers the two protocol roles. The values travel inside sealed
// confirmations and must stay stable.
type Party uint8

const (
	PartyInitiator Party = 1
	PartyResponder Party = 2
)

// String returns the role name.
func (p Party) String() string {
	switch p {
	case PartyInitiator:
		return "initiator"
	case PartyResponder:
		return "responder"
	default:
		return "unknown"
	}
}
