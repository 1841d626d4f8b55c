package app

import (
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ldq/internal/types"
)

// Permalink encodes the shareable query inputs into a URI query string
// appended to the given base address.
func (s Service) Permalink(req PermalinkRequest) (PermalinkResult, error) {
	base := strings.TrimSpace(req.Base)
	if base == "" {
		return PermalinkResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("permalink base is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return PermalinkResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("permalink base is not a valid URI").
			WithCause(err)
	}
	query := url.Values{}
	if req.State.Source != "" {
		query.Set("source", req.State.Source)
	}
	if req.State.ContextText != "" {
		query.Set("context", req.State.ContextText)
	}
	if req.State.Format != "" {
		query.Set("format", string(req.State.Format))
	}
	parsed.RawQuery = query.Encode()
	return PermalinkResult{URI: parsed.String()}, nil
}

// ParsePermalink recovers the query inputs from a previously generated
// permalink. Unknown parameters are ignored; a missing format falls back
// to text.
func (s Service) ParsePermalink(uri string) (types.QueryState, error) {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return types.QueryState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("permalink is not a valid URI").
			WithCause(err)
	}
	query := parsed.Query()
	state := types.QueryState{
		Source:      query.Get("source"),
		ContextText: query.Get("context"),
		Format:      types.OutputFormat(query.Get("format")),
	}
	if state.Format == "" {
		state.Format = types.OutputFormatText
	}
	switch state.Format {
	case types.OutputFormatText, types.OutputFormatJSON, types.OutputFormatYAML:
	default:
		return types.QueryState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("permalink carries an unknown output format")
	}
	return state, nil
}
