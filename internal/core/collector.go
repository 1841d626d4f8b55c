package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ldq/internal/ports"
	"ldq/internal/types"
)

// ResultCollector drains the producer of one resolved path expression into
// an ordered, duplicate-free collection. The resolver's sequence protocol is
// uniform for scalar and multi-valued expressions and has been observed to
// repeat a scalar value, so every drained value passes through a
// uniqueness-preserving accumulator keyed on its canonical string form.
type ResultCollector struct{}

func NewResultCollector() ResultCollector {
	return ResultCollector{}
}

func (ResultCollector) ResolveAndCollect(ctx context.Context, entry ports.EntryPath, pathExpression string) (types.CollectedResult, error) {
	if strings.TrimSpace(pathExpression) == "" {
		return types.CollectedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path expression must not be empty")
	}
	if entry == nil {
		return types.CollectedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("result collection requires an entry path")
	}

	producer, err := entry.Resolve(ctx, pathExpression)
	if err != nil {
		return types.CollectedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to resolve path expression").
			WithCause(err)
	}

	seen := map[string]struct{}{}
	var ordered []string
	for {
		term, ok, err := producer.Next(ctx)
		if err != nil {
			return types.CollectedResult{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("failed while draining resolved values").
				WithCause(err)
		}
		if !ok {
			break
		}
		if _, dup := seen[term.Value]; dup {
			continue
		}
		seen[term.Value] = struct{}{}
		ordered = append(ordered, term.Value)
	}
	log.Ctx(ctx).Debug().Str("path", pathExpression).Int("values", len(ordered)).Msg("drain complete")
	return types.CollectedResult{Values: ordered}, nil
}
