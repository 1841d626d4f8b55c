package adapters

import (
	"encoding/json"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ldq/internal/types"
)

type ResultRendererAdapter struct {
	Format types.OutputFormat
}

func NewResultRendererAdapter(format types.OutputFormat) ResultRendererAdapter {
	if format == "" {
		format = types.OutputFormatText
	}
	return ResultRendererAdapter{Format: format}
}

type renderedResult struct {
	Values []string `json:"values" yaml:"values"`
}

// Render serializes a collected result in the configured output format.
// Text mode prints one value per line; empty results render to an empty
// string in text mode and to an empty values list otherwise.
func (a ResultRendererAdapter) Render(result types.CollectedResult) (string, error) {
	switch a.Format {
	case types.OutputFormatText:
		if len(result.Values) == 0 {
			return "", nil
		}
		return strings.Join(result.Values, "\n") + "\n", nil
	case types.OutputFormatJSON:
		payload := renderedResult{Values: result.Values}
		if payload.Values == nil {
			payload.Values = []string{}
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to render result as json").
				WithCause(err)
		}
		return string(data) + "\n", nil
	case types.OutputFormatYAML:
		payload := renderedResult{Values: result.Values}
		if payload.Values == nil {
			payload.Values = []string{}
		}
		data, err := yaml.Marshal(payload)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to render result as yaml").
				WithCause(err)
		}
		return string(data), nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown output format")
	}
}
