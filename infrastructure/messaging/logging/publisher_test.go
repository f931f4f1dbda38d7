package logging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"journeybuilder/domain/events"
)

func TestPublisher_LogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewPublisher(zap.New(core))

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	evts := []events.DomainEvent{
		events.NewSegmentEvent(events.TypeSegmentCreated, "seg-1", "VIPs", 1, ts),
		events.NewJourneyEvent(events.TypeJourneyPublished, "journey-1", "Welcome", "published", 2, 2, 1, ts),
	}
	require.NoError(t, p.PublishBatch(context.Background(), evts))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Domain event", entries[0].Message)
	assert.Equal(t, events.TypeSegmentCreated, entries[0].ContextMap()["eventType"])
	assert.Equal(t, "journey-1", entries[1].ContextMap()["aggregateID"])
}
