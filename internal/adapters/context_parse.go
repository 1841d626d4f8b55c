package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ldq/internal/types"
)

type ContextParserAdapter struct{}

func NewContextParserAdapter() ContextParserAdapter {
	return ContextParserAdapter{}
}

// Parse turns the context input into a generic recursive key-value
// document. YAML is a JSON superset, so JSON-LD style contexts like
// {"@vocab": "http://xmlns.com/foaf/0.1/"} parse unchanged.
func (ContextParserAdapter) Parse(text string) (types.ContextDocument, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("context must not be empty")
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse context").
			WithCause(err)
	}
	if doc == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("context must be a key-value document")
	}
	return types.ContextDocument(doc), nil
}
