package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"ldq/internal/ports"
	"ldq/internal/types"
)

const profileDocument = `{
	"@context": {"@vocab": "http://xmlns.com/foaf/0.1/"},
	"@graph": [
		{
			"@id": "https://example.org/profile#me",
			"name": "Alice",
			"knows": [
				{"@id": "https://example.org/profile#bob", "name": "Bob"},
				{"name": "Carol"}
			]
		}
	]
}`

func documentServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func drain(t *testing.T, producer ports.Producer) []string {
	t.Helper()
	var values []string
	for {
		term, ok, err := producer.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return values
		}
		values = append(values, term.Value)
	}
}

func buildEntryPath(t *testing.T, server *httptest.Server, subject string) ports.EntryPath {
	t.Helper()
	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)
	factory, err := adapter.NewPathFactory(t.Context(), types.ContextDocument{
		"@vocab": "http://xmlns.com/foaf/0.1/",
	}, engine)
	require.NoError(t, err)
	entry, err := factory.CreatePath(subject)
	require.NoError(t, err)
	return entry
}

func TestResolveSingleProperty(t *testing.T) {
	server := documentServer(t, profileDocument)
	entry := buildEntryPath(t, server, "https://example.org/profile#me")

	producer, err := entry.Resolve(t.Context(), ".name")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Alice"}, drain(t, producer)); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestResolvePropertyChain(t *testing.T) {
	server := documentServer(t, profileDocument)
	entry := buildEntryPath(t, server, "https://example.org/profile#me")

	producer, err := entry.Resolve(t.Context(), ".knows.name")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Bob", "Carol"}, drain(t, producer)); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestResolveUnknownPropertyYieldsNothing(t *testing.T) {
	server := documentServer(t, profileDocument)
	entry := buildEntryPath(t, server, "https://example.org/profile#me")

	producer, err := entry.Resolve(t.Context(), ".homepage")
	require.NoError(t, err)
	require.Empty(t, drain(t, producer))
}

func TestResolveMalformedExpression(t *testing.T) {
	server := documentServer(t, profileDocument)
	entry := buildEntryPath(t, server, "https://example.org/profile#me")

	_, err := entry.Resolve(t.Context(), ".knows..name")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSubjectsIncludeBlankNodes(t *testing.T) {
	server := documentServer(t, profileDocument)
	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	producer, err := engine.Subjects(t.Context())
	require.NoError(t, err)
	subjects := drain(t, producer)
	require.Contains(t, subjects, "https://example.org/profile#me")
	require.Contains(t, subjects, "https://example.org/profile#bob")
	require.Contains(t, subjects, "_:b0")
}

func TestPropertiesForKnownSubject(t *testing.T) {
	server := documentServer(t, profileDocument)
	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	producer, err := engine.Properties(t.Context(), "https://example.org/profile#me")
	require.NoError(t, err)
	want := []string{
		"http://xmlns.com/foaf/0.1/name",
		"http://xmlns.com/foaf/0.1/knows",
	}
	if diff := cmp.Diff(want, drain(t, producer)); diff != "" {
		t.Fatalf("unexpected properties (-want +got):\n%s", diff)
	}
}

func TestPropertyOrderFollowsDocument(t *testing.T) {
	document := `{
		"@id": "https://example.org/wide",
		"g": "1", "i": "2", "c": "3", "d": "4", "e": "5",
		"f": "6", "h": "7", "a": "8", "b": "9", "j": "10"
	}`
	want := []string{"g", "i", "c", "d", "e", "f", "h", "a", "b", "j"}
	for run := 0; run < 25; run++ {
		graph, err := decodeDocument([]byte(document))
		require.NoError(t, err)
		node := graph.node("https://example.org/wide")
		require.NotNil(t, node)
		if diff := cmp.Diff(want, node.propertyOrder); diff != "" {
			t.Fatalf("run %d: property order (-want +got):\n%s", run, diff)
		}
	}
}

func TestSubjectOrderFollowsDocument(t *testing.T) {
	document := `{
		"@id": "https://example.org/root",
		"gamma": {"@id": "https://example.org/c"},
		"alpha": {"@id": "https://example.org/a"},
		"beta": {"@id": "https://example.org/b"}
	}`
	want := []string{
		"https://example.org/root",
		"https://example.org/c",
		"https://example.org/a",
		"https://example.org/b",
	}
	for run := 0; run < 25; run++ {
		graph, err := decodeDocument([]byte(document))
		require.NoError(t, err)
		var got []string
		for _, node := range graph.nodes {
			got = append(got, node.id)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("run %d: subject order (-want +got):\n%s", run, diff)
		}
	}
}

func TestPropertiesForUnknownSubjectListsWholeDocument(t *testing.T) {
	server := documentServer(t, profileDocument)
	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	// The listing is not scoped to the queried node when the subject is
	// absent from the document.
	producer, err := engine.Properties(t.Context(), "https://example.org/elsewhere#nobody")
	require.NoError(t, err)
	require.NotEmpty(t, drain(t, producer))
}

func TestEngineFailureSurfacesAtFirstUse(t *testing.T) {
	adapter := NewLinkedDataAdapter(1, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), "https://127.0.0.1:1/doc")
	require.NoError(t, err)

	_, err = engine.Subjects(t.Context())
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
}

func TestEngineRejectsRelativeSource(t *testing.T) {
	adapter := NewLinkedDataAdapter(1, 1, 10)
	_, err := adapter.NewEngine(t.Context(), "doc.json")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	_, err = engine.Subjects(t.Context())
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestMalformedDocument(t *testing.T) {
	server := documentServer(t, "<html>not json</html>")
	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	_, err = engine.Subjects(t.Context())
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDocumentFetchedOnce(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fetches++
		_, _ = w.Write([]byte(profileDocument))
	}))
	t.Cleanup(server.Close)

	adapter := NewLinkedDataAdapter(5, 1, 10)
	engine, err := adapter.NewEngine(t.Context(), server.URL)
	require.NoError(t, err)

	_, err = engine.Subjects(t.Context())
	require.NoError(t, err)
	_, err = engine.Properties(t.Context(), "https://example.org/profile#me")
	require.NoError(t, err)
	require.Equal(t, 1, fetches)
}
