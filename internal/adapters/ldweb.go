package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ldq/internal/ports"
	"ldq/internal/shared"
	"ldq/internal/types"
)

// LinkedDataAdapter is the HTTP-backed resolver: it fetches a JSON
// linked-data document from the source URI and answers path, subject, and
// property queries against the decoded graph. Fetching is deferred to first
// use, so an unreachable source surfaces when the engine is queried rather
// than when it is constructed.
type LinkedDataAdapter struct {
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

const defaultFetchTimeout = 30 * time.Second
const defaultFetchRetries = 3
const defaultFetchRetryDelay = 200 * time.Millisecond
const maxDocumentBytes = 8 << 20

func NewLinkedDataAdapter(timeoutSec int, retries int, retryDelayMs int) *LinkedDataAdapter {
	timeout := defaultFetchTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	if retries <= 0 {
		retries = defaultFetchRetries
	}
	delay := defaultFetchRetryDelay
	if retryDelayMs > 0 {
		delay = time.Duration(retryDelayMs) * time.Millisecond
	}
	return &LinkedDataAdapter{
		Client:     &http.Client{Timeout: timeout},
		Retries:    retries,
		RetryDelay: delay,
	}
}

func (a *LinkedDataAdapter) NewEngine(_ context.Context, sourceURI string) (ports.Engine, error) {
	if !shared.IsAbsoluteHTTPURI(sourceURI) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source must be an absolute http(s) URI")
	}
	return &webEngine{adapter: a, sourceURI: strings.TrimSpace(sourceURI)}, nil
}

func (a *LinkedDataAdapter) NewPathFactory(_ context.Context, doc types.ContextDocument, engine ports.Engine) (ports.PathFactory, error) {
	web, ok := engine.(*webEngine)
	if !ok || web == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path factory requires a web engine")
	}
	return &webPathFactory{engine: web, context: doc}, nil
}

type webEngine struct {
	adapter   *LinkedDataAdapter
	sourceURI string
	graph     *documentGraph
}

func (e *webEngine) Subjects(ctx context.Context) (ports.Producer, error) {
	graph, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	var terms []types.Term
	for _, node := range graph.nodes {
		terms = append(terms, subjectTerm(node.id))
	}
	return newSliceProducer(terms), nil
}

// Properties lists the property identifiers of subjectURI. When the subject
// is not present in the document the full property set of every node is
// returned instead of an empty list; downstream layers tolerate the
// over-broad listing.
func (e *webEngine) Properties(ctx context.Context, subjectURI string) (ports.Producer, error) {
	graph, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	var terms []types.Term
	if node := graph.node(subjectURI); node != nil {
		for _, prop := range node.propertyOrder {
			terms = append(terms, types.IRITerm(prop))
		}
		return newSliceProducer(terms), nil
	}
	seen := map[string]struct{}{}
	for _, node := range graph.nodes {
		for _, prop := range node.propertyOrder {
			if _, ok := seen[prop]; ok {
				continue
			}
			seen[prop] = struct{}{}
			terms = append(terms, types.IRITerm(prop))
		}
	}
	return newSliceProducer(terms), nil
}

func (e *webEngine) fetch(ctx context.Context) (*documentGraph, error) {
	if e.graph != nil {
		return e.graph, nil
	}
	body, err := e.adapter.fetchDocument(ctx, e.sourceURI)
	if err != nil {
		return nil, err
	}
	graph, err := decodeDocument(body)
	if err != nil {
		return nil, err
	}
	e.graph = graph
	log.Ctx(ctx).Debug().Str("source", e.sourceURI).Int("subjects", len(graph.nodes)).Msg("document fetched")
	return graph, nil
}

func (a *LinkedDataAdapter) fetchDocument(ctx context.Context, sourceURI string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, retry, err := a.fetchOnce(ctx, sourceURI)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return nil, err
		}
		time.Sleep(a.RetryDelay)
	}
	return nil, lastErr
}

func (a *LinkedDataAdapter) fetchOnce(ctx context.Context, sourceURI string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURI, nil)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/ld+json, application/json")
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to fetch source document").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("source document fetch failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, sourceURI))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source document not available").
			WithCause(shared.HTTPStatusError(resp.StatusCode, sourceURI))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to read source document").
			WithCause(err)
	}
	return body, false, nil
}

type webPathFactory struct {
	engine  *webEngine
	context types.ContextDocument
}

func (f *webPathFactory) CreatePath(subjectURI string) (ports.EntryPath, error) {
	if strings.TrimSpace(subjectURI) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("entry path requires a subject")
	}
	return &webEntryPath{factory: f, subjectURI: strings.TrimSpace(subjectURI)}, nil
}

type webEntryPath struct {
	factory    *webPathFactory
	subjectURI string
}

// Resolve walks a dotted chain of property traversals from the entry
// subject and produces the terminal values. Intermediate values that name
// other nodes continue the walk; the final segment's values are surfaced
// through the uniform producer protocol regardless of cardinality.
func (p *webEntryPath) Resolve(ctx context.Context, pathExpression string) (ports.Producer, error) {
	segments, err := splitPathExpression(pathExpression)
	if err != nil {
		return nil, err
	}
	graph, err := p.factory.engine.fetch(ctx)
	if err != nil {
		return nil, err
	}

	current := []string{p.subjectURI}
	var values []types.Term
	for i, segment := range segments {
		values = values[:0]
		for _, subject := range current {
			node := graph.node(subject)
			if node == nil {
				continue
			}
			values = append(values, node.values(segment, p.factory.context)...)
		}
		if i == len(segments)-1 {
			break
		}
		current = current[:0]
		for _, value := range values {
			if value.Kind == types.TermKindIRI || value.Kind == types.TermKindBlank {
				current = append(current, value.Value)
			}
		}
	}
	return newSliceProducer(append([]types.Term(nil), values...)), nil
}

func splitPathExpression(expression string) ([]string, error) {
	trimmed := strings.TrimSpace(expression)
	trimmed = strings.TrimPrefix(trimmed, ".")
	if trimmed == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path expression must not be empty")
	}
	segments := strings.Split(trimmed, ".")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed path expression %q", expression))
		}
	}
	return segments, nil
}

func subjectTerm(id string) types.Term {
	if strings.HasPrefix(id, "_:") {
		return types.BlankTerm(id)
	}
	return types.IRITerm(id)
}

type sliceProducer struct {
	terms []types.Term
	next  int
}

func newSliceProducer(terms []types.Term) *sliceProducer {
	return &sliceProducer{terms: terms}
}

func (p *sliceProducer) Next(_ context.Context) (types.Term, bool, error) {
	if p.next >= len(p.terms) {
		return types.Term{}, false, nil
	}
	term := p.terms[p.next]
	p.next++
	return term, true, nil
}

// decodeDocument builds the in-memory graph from a JSON linked-data
// document: either a single node object or a @graph array. Nested objects
// become blank nodes unless they carry their own @id. Decoding preserves
// the document's key order so subject and property enumeration stay stable
// across runs.
func decodeDocument(body []byte) (*documentGraph, error) {
	decoded, err := decodeOrderedJSON(body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse source document").
			WithCause(err)
	}
	graph := &documentGraph{index: map[string]int{}}
	switch doc := decoded.(type) {
	case *jsonObject:
		if nodes, ok := doc.values["@graph"].([]any); ok {
			for _, raw := range nodes {
				if obj, ok := raw.(*jsonObject); ok {
					graph.addNode(obj, docContext(doc))
				}
			}
			return graph, nil
		}
		graph.addNode(doc, docContext(doc))
		return graph, nil
	case []any:
		for _, raw := range doc {
			if obj, ok := raw.(*jsonObject); ok {
				graph.addNode(obj, docContext(obj))
			}
		}
		return graph, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source document is not a linked-data object")
	}
}

// jsonObject is a decoded JSON object that remembers the order its keys
// appeared in the document. encoding/json's map decoding discards that
// order, so objects are rebuilt from the token stream instead.
type jsonObject struct {
	keys   []string
	values map[string]any
}

func decodeOrderedJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	value, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after document")
	}
	return value, nil
}

func decodeOrderedValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := &jsonObject{values: map[string]any{}}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			value, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			if _, seen := obj.values[key]; !seen {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = value
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		items := []any{}
		for dec.More() {
			value, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return tok, nil
	}
}

func (o *jsonObject) flatten() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		out[key] = flattenValue(o.values[key])
	}
	return out
}

func flattenValue(v any) any {
	switch value := v.(type) {
	case *jsonObject:
		return value.flatten()
	case []any:
		items := make([]any, len(value))
		for i, item := range value {
			items[i] = flattenValue(item)
		}
		return items
	default:
		return v
	}
}

func docContext(doc *jsonObject) types.ContextDocument {
	if ctx, ok := doc.values["@context"].(*jsonObject); ok {
		return types.ContextDocument(ctx.flatten())
	}
	return nil
}

type documentGraph struct {
	nodes  []*documentNode
	index  map[string]int
	blanks int
}

type documentNode struct {
	id            string
	propertyOrder []string
	properties    map[string][]types.Term
	// compact keeps the document's original key for each expanded
	// property so compact-name lookups still match.
	compact map[string]string
}

func (g *documentGraph) node(id string) *documentNode {
	if idx, ok := g.index[id]; ok {
		return g.nodes[idx]
	}
	return nil
}

func (g *documentGraph) addNode(obj *jsonObject, docCtx types.ContextDocument) string {
	id, _ := obj.values["@id"].(string)
	if id == "" {
		g.blanks++
		id = fmt.Sprintf("_:b%d", g.blanks-1)
	}
	node := g.node(id)
	if node == nil {
		node = &documentNode{
			id:         id,
			properties: map[string][]types.Term{},
			compact:    map[string]string{},
		}
		g.index[id] = len(g.nodes)
		g.nodes = append(g.nodes, node)
	}
	for _, key := range obj.keys {
		if strings.HasPrefix(key, "@") {
			continue
		}
		raw := obj.values[key]
		expanded := key
		if iri := docCtx.TermIRI(key); iri != "" {
			expanded = iri
		}
		if _, ok := node.properties[expanded]; !ok {
			node.propertyOrder = append(node.propertyOrder, expanded)
		}
		node.compact[key] = expanded
		node.properties[expanded] = append(node.properties[expanded], g.addValues(raw, docCtx)...)
	}
	return id
}

func (g *documentGraph) addValues(raw any, docCtx types.ContextDocument) []types.Term {
	switch value := raw.(type) {
	case []any:
		var terms []types.Term
		for _, item := range value {
			terms = append(terms, g.addValues(item, docCtx)...)
		}
		return terms
	case *jsonObject:
		if literal, ok := value.values["@value"]; ok {
			return []types.Term{types.LiteralTerm(fmt.Sprintf("%v", literal))}
		}
		id := g.addNode(value, docCtx)
		return []types.Term{subjectTerm(id)}
	case string:
		return []types.Term{types.LiteralTerm(value)}
	case nil:
		return nil
	default:
		return []types.Term{types.LiteralTerm(fmt.Sprintf("%v", value))}
	}
}

// values returns the terms of one property, matching the traversal segment
// against the expanded identifier, the query context's expansion of the
// segment, or the document's own compact name.
func (n *documentNode) values(segment string, queryCtx types.ContextDocument) []types.Term {
	if terms, ok := n.properties[segment]; ok {
		return terms
	}
	if iri := queryCtx.TermIRI(segment); iri != "" {
		if terms, ok := n.properties[iri]; ok {
			return terms
		}
	}
	if expanded, ok := n.compact[segment]; ok {
		return n.properties[expanded]
	}
	return nil
}
