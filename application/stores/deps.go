package stores

import (
	"time"

	"go.uber.org/zap"

	"journeybuilder/application/ports"
)

// Dependencies are the collaborators shared by all stores. Every field is
// optional; a zero value gives an in-memory store with no side effects.
type Dependencies struct {
	Persister *Persister
	Publisher ports.EventPublisher
	Logger    *zap.Logger
	Clock     func() time.Time
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return d
}

func (d Dependencies) emitter() emitter {
	return emitter{publisher: d.Publisher, logger: d.Logger, timeout: 5 * time.Second}
}
