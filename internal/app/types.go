package app

import (
	"time"

	"ldq/internal/types"
)

type ExecuteRequest struct {
	Source         string
	ContextText    string
	Subject        string
	PathExpression string
}

type ExecuteResult struct {
	Values  []string
	Elapsed time.Duration
}

type ListSubjectsRequest struct {
	Source string
}

type ListSubjectsResult struct {
	Subjects []string
}

type ListPropertiesRequest struct {
	Source  string
	Subject string
}

type ListPropertiesResult struct {
	Properties []string
}

type PermalinkRequest struct {
	Base  string
	State types.QueryState
}

type PermalinkResult struct {
	URI string
}
