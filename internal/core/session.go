package core

import (
	"context"

	"ldq/internal/ports"
	"ldq/internal/types"
)

type InputKind string

const (
	InputSource  InputKind = "source"
	InputContext InputKind = "context"
	InputSubject InputKind = "subject"
)

// Session is the caller-owned query state: one resource chain plus the
// enumeration lists and current selections the surrounding layer displays.
// There is no process-wide instance; every operation threads through a
// Session the caller constructed.
type Session struct {
	Chain     *ResourceChain
	Collector ResultCollector

	subjectEnum  SubjectEnumerator
	propertyEnum PropertyEnumerator

	Subjects   []string
	Properties []string

	SelectedSubject  string
	SelectedProperty string
}

func NewSession(resolver ports.ResolverPort) *Session {
	return &Session{
		Chain:        NewResourceChain(resolver),
		Collector:    NewResultCollector(),
		subjectEnum:  NewSubjectEnumerator(),
		propertyEnum: NewPropertyEnumerator(),
	}
}

// MarkInputChanged is the invalidation hook: each event sets exactly one
// staleness flag.
func (s *Session) MarkInputChanged(which InputKind) {
	switch which {
	case InputSource:
		s.Chain.Tracker.MarkSourceChanged()
	case InputContext:
		s.Chain.Tracker.MarkContextChanged()
	case InputSubject:
		s.Chain.Tracker.MarkSubjectChanged()
	}
}

// ExecuteQuery runs the full pipeline: refresh the stale part of the chain,
// then resolve and collect. A resolution failure leaves the staleness flags
// as they were, so retrying with unchanged inputs reuses the existing
// chain.
func (s *Session) ExecuteQuery(ctx context.Context, source string, doc types.ContextDocument, subject string, pathExpression string) (types.CollectedResult, error) {
	entry, err := s.Chain.EnsureFresh(ctx, source, doc, subject)
	if err != nil {
		return types.CollectedResult{}, err
	}
	s.SelectedSubject = subject
	return s.Collector.ResolveAndCollect(ctx, entry, pathExpression)
}

// ListSubjects refreshes the engine and replaces the session's subject
// list. On failure the source is re-marked stale and the selected subject
// cleared: a source that cannot be enumerated cannot have valid derived
// resources.
func (s *Session) ListSubjects(ctx context.Context, source string) ([]string, error) {
	engine, err := s.Chain.EnsureEngineFresh(ctx, source)
	if err != nil {
		s.failSource()
		return nil, err
	}
	subjects, err := s.subjectEnum.Enumerate(ctx, engine)
	if err != nil {
		s.failSource()
		return nil, err
	}
	s.Subjects = subjects
	return subjects, nil
}

// ListProperties replaces the session's property list for the given
// subject. On failure only the selected property is cleared.
func (s *Session) ListProperties(ctx context.Context, source string, subject string) ([]string, error) {
	engine, err := s.Chain.EnsureEngineFresh(ctx, source)
	if err != nil {
		s.SelectedProperty = ""
		return nil, err
	}
	properties, err := s.propertyEnum.Enumerate(ctx, engine, subject)
	if err != nil {
		s.SelectedProperty = ""
		return nil, err
	}
	s.Properties = properties
	return properties, nil
}

func (s *Session) failSource() {
	s.Chain.Tracker.MarkSourceChanged()
	s.SelectedSubject = ""
	s.Subjects = nil
}
