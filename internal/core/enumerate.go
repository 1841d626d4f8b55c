package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ldq/internal/policies"
	"ldq/internal/ports"
)

// SubjectEnumerator lists the node identifiers of the fetched document,
// keeping only those its filter policy admits. It queries the engine
// directly, bypassing the path factory and entry path.
type SubjectEnumerator struct {
	Filter policies.TermFilterPolicy
}

func NewSubjectEnumerator() SubjectEnumerator {
	return SubjectEnumerator{Filter: policies.NewSubjectFilterPolicy()}
}

func (e SubjectEnumerator) Enumerate(ctx context.Context, engine ports.Engine) ([]string, error) {
	if engine == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subject enumeration requires an engine")
	}
	producer, err := engine.Subjects(ctx)
	if err != nil {
		return nil, enumerationError("subject enumeration failed", err)
	}
	var subjects []string
	for {
		term, ok, err := producer.Next(ctx)
		if err != nil {
			return nil, enumerationError("subject enumeration failed", err)
		}
		if !ok {
			break
		}
		if !e.Filter.Admit(term) {
			continue
		}
		subjects = append(subjects, term.Value)
	}
	return subjects, nil
}

// PropertyEnumerator lists the property identifiers attached to one
// subject. No filtering: the resolver's listing is surfaced as-is, which
// may include properties of other nodes in documents the resolver does not
// scope precisely.
type PropertyEnumerator struct {
	Filter policies.TermFilterPolicy
}

func NewPropertyEnumerator() PropertyEnumerator {
	return PropertyEnumerator{Filter: policies.NewPermissivePolicy()}
}

func (e PropertyEnumerator) Enumerate(ctx context.Context, engine ports.Engine, subject string) ([]string, error) {
	if engine == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("property enumeration requires an engine")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("property enumeration requires a subject")
	}
	producer, err := engine.Properties(ctx, subject)
	if err != nil {
		return nil, enumerationError("property enumeration failed", err)
	}
	var properties []string
	for {
		term, ok, err := producer.Next(ctx)
		if err != nil {
			return nil, enumerationError("property enumeration failed", err)
		}
		if !ok {
			break
		}
		if !e.Filter.Admit(term) {
			continue
		}
		properties = append(properties, term.Value)
	}
	return properties, nil
}

func enumerationError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(msg).
		WithCause(cause)
}
