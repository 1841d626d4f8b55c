package ports

import (
	"context"

	"ldq/internal/types"
)

// Producer yields the values of one resolved expression or enumeration.
// Next returns ok=false once the sequence is exhausted. The protocol is
// uniform whether the underlying expression denotes one value or many, so
// callers must deduplicate defensively.
type Producer interface {
	Next(ctx context.Context) (types.Term, bool, error)
}

// Engine is a queryable handle over one fetched source document.
type Engine interface {
	// Subjects lists every node identifier present in the document.
	Subjects(ctx context.Context) (Producer, error)
	// Properties lists the property identifiers attached to subjectURI.
	Properties(ctx context.Context, subjectURI string) (Producer, error)
}

// PathFactory builds entry paths bound to one context and engine.
type PathFactory interface {
	CreatePath(subjectURI string) (EntryPath, error)
}

// EntryPath is a traversal root anchored at one subject.
type EntryPath interface {
	Resolve(ctx context.Context, pathExpression string) (Producer, error)
}

// ResolverPort is the external linked-data resolution collaborator. An
// engine failure may surface at first use rather than at construction.
type ResolverPort interface {
	NewEngine(ctx context.Context, sourceURI string) (Engine, error)
	NewPathFactory(ctx context.Context, doc types.ContextDocument, engine Engine) (PathFactory, error)
}
