package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ldq/internal/core"
)

// Execute runs the full pipeline: validate every input, refresh the stale
// part of the session's resource chain, then resolve and collect. All
// validation happens before any chain rebuild is attempted.
func (s Service) Execute(ctx context.Context, session *core.Session, req ExecuteRequest) (ExecuteResult, error) {
	if session == nil {
		return ExecuteResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("execute requires a session")
	}
	if strings.TrimSpace(req.Source) == "" {
		return ExecuteResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source is required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return ExecuteResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subject is required")
	}
	if strings.TrimSpace(req.PathExpression) == "" {
		return ExecuteResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path expression is required")
	}
	doc, err := s.ContextParser.Parse(req.ContextText)
	if err != nil {
		return ExecuteResult{}, err
	}

	started := s.Clock()
	result, err := session.ExecuteQuery(ctx, req.Source, doc, req.Subject, req.PathExpression)
	if err != nil {
		return ExecuteResult{}, err
	}
	elapsed := s.Clock().Sub(started)
	log.Ctx(ctx).Debug().
		Str("subject", req.Subject).
		Str("path", req.PathExpression).
		Int("values", len(result.Values)).
		Dur("elapsed", elapsed).
		Msg("query executed")
	return ExecuteResult{Values: result.Values, Elapsed: elapsed}, nil
}
