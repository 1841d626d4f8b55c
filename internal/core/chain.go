package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ldq/internal/ports"
	"ldq/internal/shared"
	"ldq/internal/types"
)

// ResourceChain owns the three dependent resources of a query: an Engine
// built from the source URI, a PathFactory built from the context and the
// engine, and an EntryPath built from the factory and the subject. Each
// slot is memoized and replaced, never mutated; the tracker decides which
// slots a rebuild must touch.
type ResourceChain struct {
	Resolver ports.ResolverPort
	Tracker  *StalenessTracker

	engine      ports.Engine
	pathFactory ports.PathFactory
	entryPath   ports.EntryPath
}

func NewResourceChain(resolver ports.ResolverPort) *ResourceChain {
	return &ResourceChain{
		Resolver: resolver,
		Tracker:  NewStalenessTracker(),
	}
}

// Engine returns the current engine slot, which may be nil before the first
// rebuild. Callers get read-only use; only the chain replaces slots.
func (c *ResourceChain) Engine() ports.Engine {
	return c.engine
}

// EnsureFresh rebuilds exactly the stale portion of the chain and returns
// the entry path. The three rebuild predicates are evaluated before any
// slot is replaced, so a rebuild triggered by both a source and a context
// change constructs the path factory once, not twice. Staleness flags are
// cleared only after every needed rebuild succeeded; a failed rebuild
// leaves them set so a retry starts from the same point.
func (c *ResourceChain) EnsureFresh(ctx context.Context, source string, doc types.ContextDocument, subject string) (ports.EntryPath, error) {
	if err := c.validateInputs(source, subject); err != nil {
		return nil, err
	}
	assert.NotEmpty(ctx, source, "source must be set after validation")
	assert.NotEmpty(ctx, subject, "subject must be set after validation")

	rebuildEngine := c.Tracker.MustRebuildEngine() || c.engine == nil
	rebuildFactory := c.Tracker.MustRebuildPathFactory() || rebuildEngine || c.pathFactory == nil
	rebuildPath := c.Tracker.MustRebuildEntryPath() || rebuildFactory || c.entryPath == nil

	if rebuildEngine {
		engine, err := c.Resolver.NewEngine(ctx, source)
		if err != nil {
			return nil, err
		}
		c.engine = engine
		log.Ctx(ctx).Debug().Str("source", source).Msg("engine rebuilt")
	}
	if rebuildFactory {
		factory, err := c.Resolver.NewPathFactory(ctx, doc, c.engine)
		if err != nil {
			return nil, err
		}
		c.pathFactory = factory
		log.Ctx(ctx).Debug().Msg("path factory rebuilt")
	}
	if rebuildPath {
		path, err := c.pathFactory.CreatePath(subject)
		if err != nil {
			return nil, err
		}
		c.entryPath = path
		log.Ctx(ctx).Debug().Str("subject", subject).Msg("entry path rebuilt")
	}

	c.Tracker.ClearAll()
	return c.entryPath, nil
}

// EnsureEngineFresh rebuilds only the engine slot. Enumeration queries need
// no context or subject, so only the source flag is cleared; context and
// subject staleness survive for the next full rebuild.
func (c *ResourceChain) EnsureEngineFresh(ctx context.Context, source string) (ports.Engine, error) {
	if !shared.IsAbsoluteHTTPURI(source) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source must be an absolute http(s) URI")
	}
	if c.Tracker.MustRebuildEngine() || c.engine == nil {
		engine, err := c.Resolver.NewEngine(ctx, source)
		if err != nil {
			return nil, err
		}
		c.engine = engine
		log.Ctx(ctx).Debug().Str("source", source).Msg("engine rebuilt")
	}
	c.Tracker.ClearSource()
	return c.engine, nil
}

func (c *ResourceChain) validateInputs(source string, subject string) error {
	if c.Resolver == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resource chain requires a resolver port")
	}
	if !shared.IsAbsoluteHTTPURI(source) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source must be an absolute http(s) URI")
	}
	if strings.TrimSpace(subject) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subject must not be empty")
	}
	return nil
}
