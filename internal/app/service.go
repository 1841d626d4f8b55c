package app

import (
	"time"

	"ldq/internal/adapters"
	"ldq/internal/core"
	"ldq/internal/ports"
)

type Service struct {
	Resolver      ports.ResolverPort
	ContextParser adapters.ContextParserAdapter
	Clock         func() time.Time
}

func NewService() Service {
	return Service{
		Resolver:      adapters.NewLinkedDataAdapter(0, 0, 0),
		ContextParser: adapters.NewContextParserAdapter(),
		Clock:         time.Now,
	}
}

// NewSession creates the caller-owned query state every operation threads
// through. Sessions are not shared between concurrent operations.
func (s Service) NewSession() *core.Session {
	return core.NewSession(s.Resolver)
}

// InputChanged is the invalidation hook: the surrounding layer calls it the
// instant one of the three inputs is edited.
func (s Service) InputChanged(session *core.Session, which core.InputKind) {
	session.MarkInputChanged(which)
}
