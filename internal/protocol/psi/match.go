package psi

import "contactpsi/internal/domain"

// Comparisons is the fixed number of hash comparisons in one Match.
const Comparisons = domain.MaxContacts * domain.MaxContacts

// Outcome is the result of one intersection: a view for each party aligned
// to that party's own slots, and the number of comparisons performed.
type Outcome struct {
	Initiator   domain.MatchResult
	Responder   domain.MatchResult
	Comparisons int
}

// Match compares every initiator slot against every responder slot. A pair
// matches when both hashes are non-zero, equal, and eligible is set. The
// count includes repeated hashes once per matching pair.
func Match(initiator, responder domain.ContactList, eligible uint8) Outcome {
	a := Sanitize(initiator)
	b := Sanitize(responder)
	eligible = bit(eligible)

	var out Outcome
	var count uint32
	for i := range a.Hashes {
		ai := a.Hashes[i]
		av := 1 ^ isZero(ai)
		for j := range b.Hashes {
			bj := b.Hashes[j]
			hit := av & (1 ^ isZero(bj)) & equal(ai, bj) & eligible

			out.Initiator.Matches[i] = selectHash(hit, ai, out.Initiator.Matches[i])
			out.Responder.Matches[j] = selectHash(hit, bj, out.Responder.Matches[j])
			count += uint32(hit)
			out.Comparisons++
		}
	}
	out.Initiator.MatchCount = count
	out.Responder.MatchCount = count
	return out
}

// Sanitize enforces the padding invariant on a list received from outside:
// the count is clamped to MaxContacts and every slot at or past it is zeroed.
func Sanitize(list domain.ContactList) domain.ContactList {
	var out domain.ContactList
	out.Count = selectU32(lessU32(domain.MaxContacts, list.Count), domain.MaxContacts, list.Count)
	for i := range list.Hashes {
		keep := lessU32(uint32(i), out.Count)
		out.Hashes[i] = selectHash(keep, list.Hashes[i], domain.Hash{})
	}
	return out
}
