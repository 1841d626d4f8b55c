package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermIRIPassesThroughAbsolute(t *testing.T) {
	var doc ContextDocument
	assert.Equal(t, "http://xmlns.com/foaf/0.1/name", doc.TermIRI("http://xmlns.com/foaf/0.1/name"))
}

func TestTermIRIUsesVocab(t *testing.T) {
	doc := ContextDocument{"@vocab": "http://xmlns.com/foaf/0.1/"}
	assert.Equal(t, "http://xmlns.com/foaf/0.1/name", doc.TermIRI("name"))
}

func TestTermIRIExplicitMapping(t *testing.T) {
	doc := ContextDocument{
		"@vocab": "http://xmlns.com/foaf/0.1/",
		"label":  "http://www.w3.org/2000/01/rdf-schema#label",
		"knows":  map[string]any{"@id": "http://xmlns.com/foaf/0.1/knows"},
	}
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#label", doc.TermIRI("label"))
	assert.Equal(t, "http://xmlns.com/foaf/0.1/knows", doc.TermIRI("knows"))
}

func TestTermIRIUnknownName(t *testing.T) {
	doc := ContextDocument{"label": "http://www.w3.org/2000/01/rdf-schema#label"}
	assert.Equal(t, "", doc.TermIRI("name"))
}

func TestTermKindsOfHTTPIRI(t *testing.T) {
	assert.True(t, IRITerm("https://example.org/#me").IsHTTPIRI())
	assert.False(t, BlankTerm("_:b0").IsHTTPIRI())
	assert.False(t, LiteralTerm("http://literal-that-looks-like-a-uri").IsHTTPIRI())
}
