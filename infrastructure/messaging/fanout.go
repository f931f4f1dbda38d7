// Package messaging holds event publisher implementations
package messaging

import (
	"context"
	"errors"

	"journeybuilder/application/ports"
	"journeybuilder/domain/events"
)

// Fanout delivers every event to each publisher in turn. All publishers are
// attempted; their errors are joined.
type Fanout struct {
	publishers []ports.EventPublisher
}

// NewFanout skips nil publishers
func NewFanout(publishers ...ports.EventPublisher) *Fanout {
	f := &Fanout{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event events.DomainEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishBatch(ctx, evts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
