package types

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// QueryState captures the shareable inputs of a query: everything needed to
// reproduce it later, minus the transient subject and path expression.
type QueryState struct {
	Source      string
	ContextText string
	Format      OutputFormat
}

// CollectedResult is the ordered, duplicate-free outcome of draining one
// resolved path expression.
type CollectedResult struct {
	Values []string
}
