package policies

import "ldq/internal/types"

// TermFilterPolicy decides which enumerated identifiers are surfaced to the
// caller. Subject listings keep only nodes addressable over HTTP(S), which
// drops blank nodes and relative identifiers; property listings keep
// everything the resolver reports.
type TermFilterPolicy struct {
	httpOnly bool
}

func NewSubjectFilterPolicy() TermFilterPolicy {
	return TermFilterPolicy{httpOnly: true}
}

func NewPermissivePolicy() TermFilterPolicy {
	return TermFilterPolicy{}
}

func (p TermFilterPolicy) Admit(term types.Term) bool {
	if !p.httpOnly {
		return true
	}
	return term.IsHTTPIRI()
}
