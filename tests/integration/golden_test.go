package integration

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"ldq/internal/adapters"
	"ldq/internal/app"
	"ldq/internal/types"
)

// TestGoldenRenderedOutput compares every output format of one collected
// result against committed golden files. Update with `go test -update`.
func TestGoldenRenderedOutput(t *testing.T) {
	result := types.CollectedResult{Values: []string{"Bob", "Carol"}}
	g := goldie.New(t)

	for _, tc := range []struct {
		name   string
		format types.OutputFormat
	}{
		{name: "values_text", format: types.OutputFormatText},
		{name: "values_json", format: types.OutputFormatJSON},
		{name: "values_yaml", format: types.OutputFormatYAML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rendered, err := adapters.NewResultRendererAdapter(tc.format).Render(result)
			require.NoError(t, err)
			g.Assert(t, tc.name, []byte(rendered))
		})
	}
}

func TestGoldenPermalink(t *testing.T) {
	service := app.NewService()
	link, err := service.Permalink(app.PermalinkRequest{
		Base: "https://ldq.example/query",
		State: types.QueryState{
			Source:      "https://example.org/profile",
			ContextText: `{"@vocab": "http://xmlns.com/foaf/0.1/"}`,
			Format:      types.OutputFormatJSON,
		},
	})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "permalink", []byte(link.URI))
}
