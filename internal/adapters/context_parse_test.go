package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContextJSON(t *testing.T) {
	doc, err := NewContextParserAdapter().Parse(`{"@vocab": "http://xmlns.com/foaf/0.1/"}`)
	require.NoError(t, err)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", doc.VocabIRI())
	assert.Equal(t, "http://xmlns.com/foaf/0.1/name", doc.TermIRI("name"))
}

func TestParseContextExplicitTermWinsOverVocab(t *testing.T) {
	doc, err := NewContextParserAdapter().Parse(`{
		"@vocab": "http://xmlns.com/foaf/0.1/",
		"label": "http://www.w3.org/2000/01/rdf-schema#label"
	}`)
	require.NoError(t, err)
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#label", doc.TermIRI("label"))
	assert.Equal(t, "http://xmlns.com/foaf/0.1/name", doc.TermIRI("name"))
}

func TestParseContextNestedTermMapping(t *testing.T) {
	doc, err := NewContextParserAdapter().Parse(`{
		"knows": {"@id": "http://xmlns.com/foaf/0.1/knows", "@type": "@id"}
	}`)
	require.NoError(t, err)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/knows", doc.TermIRI("knows"))
}

func TestParseContextYAML(t *testing.T) {
	doc, err := NewContextParserAdapter().Parse("\"@vocab\": http://xmlns.com/foaf/0.1/\n")
	require.NoError(t, err)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", doc.VocabIRI())
}

func TestParseContextEmpty(t *testing.T) {
	_, err := NewContextParserAdapter().Parse("   ")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestParseContextMalformed(t *testing.T) {
	_, err := NewContextParserAdapter().Parse(`{"@vocab": `)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestParseContextScalarRejected(t *testing.T) {
	_, err := NewContextParserAdapter().Parse(`null`)
	require.Error(t, err)
}
