// Package logging provides an event publisher that writes domain events to
// the application log. It is the default when no event bus is configured.
package logging

import (
	"context"

	"go.uber.org/zap"

	"journeybuilder/domain/events"
)

// Publisher logs each event at info level
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a log publisher
func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger.Named("events")}
}

func (p *Publisher) Publish(_ context.Context, event events.DomainEvent) error {
	p.logger.Info("Domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Int("version", event.GetVersion()),
		zap.Time("timestamp", event.GetTimestamp()),
		zap.Any("event", event),
	)
	return nil
}

func (p *Publisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
