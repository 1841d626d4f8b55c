package types

import "strings"

type TermKind string

const (
	TermKindIRI     TermKind = "iri"
	TermKindBlank   TermKind = "blank"
	TermKindLiteral TermKind = "literal"
)

// Term is a single value produced by the resolver: a named node, a blank
// node, or a literal. Value holds the canonical string form used for
// display and deduplication.
type Term struct {
	Value string
	Kind  TermKind
}

func IRITerm(value string) Term {
	return Term{Value: value, Kind: TermKindIRI}
}

func BlankTerm(value string) Term {
	return Term{Value: value, Kind: TermKindBlank}
}

func LiteralTerm(value string) Term {
	return Term{Value: value, Kind: TermKindLiteral}
}

// IsHTTPIRI reports whether the term names a node reachable over HTTP(S).
// Blank nodes and literals never qualify.
func (t Term) IsHTTPIRI() bool {
	if t.Kind != TermKindIRI {
		return false
	}
	return strings.HasPrefix(t.Value, "http://") || strings.HasPrefix(t.Value, "https://")
}
