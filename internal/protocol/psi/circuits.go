package psi

import "contactpsi/internal/domain"

// InitSession returns the empty record every session starts from.
func InitSession() domain.SessionState {
	return domain.SessionState{}
}

// SubmitInitiator writes list into the initiator slot if it is still free,
// and records key as the initiator. An occupied slot is left as it was and
// the confirmation reports Accepted=0; the work done is the same either way.
func SubmitInitiator(state domain.SessionState, key domain.X25519Public, list domain.ContactList) (domain.SessionState, domain.SubmitConfirmation) {
	list = Sanitize(list)
	free := eqU8(state.InitiatorSubmitted, 0)

	next := state
	for i := range next.InitiatorHashes {
		next.InitiatorHashes[i] = selectHash(free, list.Hashes[i], state.InitiatorHashes[i])
	}
	next.InitiatorCount = selectU32(free, list.Count, state.InitiatorCount)
	next.InitiatorKey = selectKey(free, key, state.InitiatorKey)
	next.InitiatorSubmitted = selectU8(free, 1, state.InitiatorSubmitted)

	return next, domain.SubmitConfirmation{
		Accepted: selectU8(free, 1, 0),
		Party:    domain.PartyInitiator,
	}
}

// SubmitAndMatch writes the responder list and both result views when the
// initiator has submitted and no match has happened yet. The full
// intersection runs regardless; an ineligible call returns the zero view
// and leaves state untouched. An eligible call records key as the responder.
func SubmitAndMatch(state domain.SessionState, key domain.X25519Public, list domain.ContactList) (domain.SessionState, domain.MatchResult, int) {
	list = Sanitize(list)
	eligible := eqU8(state.InitiatorSubmitted, 1) & eqU8(state.Matched, 0)

	stored := domain.ContactList{Hashes: state.InitiatorHashes, Count: state.InitiatorCount}
	out := Match(stored, list, eligible)

	next := state
	for i := range next.ResponderHashes {
		next.ResponderHashes[i] = selectHash(eligible, list.Hashes[i], state.ResponderHashes[i])
		next.InitiatorResult[i] = selectHash(eligible, out.Initiator.Matches[i], state.InitiatorResult[i])
		next.ResponderResult[i] = selectHash(eligible, out.Responder.Matches[i], state.ResponderResult[i])
	}
	next.ResponderCount = selectU32(eligible, list.Count, state.ResponderCount)
	next.ResponderKey = selectKey(eligible, key, state.ResponderKey)
	next.ResultCount = selectU32(eligible, out.Responder.MatchCount, state.ResultCount)
	next.ResponderSubmitted = selectU8(eligible, 1, state.ResponderSubmitted)
	next.Matched = selectU8(eligible, 1, state.Matched)

	return next, out.Responder, out.Comparisons
}

// RevealInitiator projects the stored initiator view for key. Before a
// match, or for any key other than the recorded initiator, it returns the
// zero view with count 0.
func RevealInitiator(state domain.SessionState, key domain.X25519Public) domain.MatchResult {
	matched := eqU8(state.Matched, 1) & equalKey(key, state.InitiatorKey)

	var res domain.MatchResult
	for i := range res.Matches {
		res.Matches[i] = selectHash(matched, state.InitiatorResult[i], domain.Hash{})
	}
	res.MatchCount = selectU32(matched, state.ResultCount, 0)
	return res
}
