package types

import "time"

// SessionStatus is the public progress marker of a session. It only moves
// forward.
type SessionStatus uint8

const (
	StatusAwaitingInitiator SessionStatus = iota
	StatusAwaitingResponder
	StatusComputing
	StatusMatched
)

// String returns the status name.
func (s SessionStatus) String() string {
	switch s {
	case StatusAwaitingInitiator:
		return "awaiting_initiator"
	case StatusAwaitingResponder:
		return "awaiting_responder"
	case StatusComputing:
		return "computing"
	case StatusMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// SessionState is the secret per-session record. It only ever exists in
// plaintext inside the cluster; at rest it is sealed with the cluster key.
// The party keys recorded here decide who results may be sealed to.
type SessionState struct {
	InitiatorKey       X25519Public      `json:"initiator_key"`
	ResponderKey       X25519Public      `json:"responder_key"`
	InitiatorHashes    [MaxContacts]Hash `json:"initiator_hashes"`
	InitiatorCount     uint32            `json:"initiator_count"`
	ResponderHashes    [MaxContacts]Hash `json:"responder_hashes"`
	ResponderCount     uint32            `json:"responder_count"`
	InitiatorSubmitted uint8             `json:"initiator_submitted"`
	ResponderSubmitted uint8             `json:"responder_submitted"`
	Matched            uint8             `json:"matched"`
	InitiatorResult    [MaxContacts]Hash `json:"initiator_result"`
	ResponderResult    [MaxContacts]Hash `json:"responder_result"`
	ResultCount        uint32            `json:"result_count"`
}

// MatchResult is one party's view of the intersection, aligned to that
// party's own submission order. Unmatched slots hold the sentinel.
type MatchResult struct {
	Matches    [MaxContacts]Hash `json:"matches"`
	MatchCount uint32            `json:"match_count"`
}

// Matched returns the indices of the non-zero slots of the view.
func (r MatchResult) Matched() []int {
	var idx []int
	for i, h := range r.Matches {
		if !h.IsZero() {
			idx = append(idx, i)
		}
	}
	return idx
}

// SubmitConfirmation acknowledges a contact submission. Accepted is 1 when
// the slot was written and 0 when it was already occupied.
type SubmitConfirmation struct {
	Accepted uint8 `json:"accepted"`
	Party    Party `json:"party"`
}

// SessionMeta is the public part of a session: who takes part and how far
// the protocol has progressed.
type SessionMeta struct {
	ID        SessionID     `json:"id"`
	Initiator X25519Public  `json:"initiator"`
	Responder X25519Public  `json:"responder"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionRecord is the unit persisted per session id.
type SessionRecord struct {
	Meta  SessionMeta `json:"meta"`
	State []byte      `json:"state"`
}
