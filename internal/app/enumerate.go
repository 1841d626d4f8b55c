package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ldq/internal/core"
)

// ListSubjects refreshes only the engine and enumerates the document's
// subjects. Enumeration failures are recoverable: the session re-marks the
// source stale and clears the selected subject before the error is
// surfaced.
func (s Service) ListSubjects(ctx context.Context, session *core.Session, req ListSubjectsRequest) (ListSubjectsResult, error) {
	if session == nil {
		return ListSubjectsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subject listing requires a session")
	}
	if strings.TrimSpace(req.Source) == "" {
		return ListSubjectsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source is required")
	}
	subjects, err := session.ListSubjects(ctx, req.Source)
	if err != nil {
		return ListSubjectsResult{}, err
	}
	return ListSubjectsResult{Subjects: subjects}, nil
}

// ListProperties enumerates the properties of one subject. On failure only
// the selected property is cleared.
func (s Service) ListProperties(ctx context.Context, session *core.Session, req ListPropertiesRequest) (ListPropertiesResult, error) {
	if session == nil {
		return ListPropertiesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("property listing requires a session")
	}
	if strings.TrimSpace(req.Source) == "" {
		return ListPropertiesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source is required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return ListPropertiesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subject is required")
	}
	properties, err := session.ListProperties(ctx, req.Source, req.Subject)
	if err != nil {
		return ListPropertiesResult{}, err
	}
	return ListPropertiesResult{Properties: properties}, nil
}
