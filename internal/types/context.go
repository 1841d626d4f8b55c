package types

import "strings"

// ContextDocument is a parsed semantic context: a recursive key-value
// document mapping short property names to absolute identifiers. It is
// deliberately untyped beyond the map shape so that any context a resolver
// understands can be carried through unchanged.
type ContextDocument map[string]any

// VocabIRI returns the default vocabulary base, if the context declares one.
func (c ContextDocument) VocabIRI() string {
	if c == nil {
		return ""
	}
	if vocab, ok := c["@vocab"].(string); ok {
		return vocab
	}
	return ""
}

// TermIRI expands a compact property name to an absolute identifier.
// Explicit term mappings win over the default vocabulary; names that are
// already absolute pass through untouched. Returns "" when the name cannot
// be expanded.
func (c ContextDocument) TermIRI(name string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	if c != nil {
		switch mapped := c[name].(type) {
		case string:
			return mapped
		case map[string]any:
			if id, ok := mapped["@id"].(string); ok {
				return id
			}
		}
	}
	if vocab := c.VocabIRI(); vocab != "" {
		return vocab + name
	}
	return ""
}
