package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journeybuilder/domain/events"
)

type fakeClient struct {
	calls  []*eventbridge.PutEventsInput
	failed int32
	err    error
}

func (f *fakeClient) PutEvents(_ context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	out := &eventbridge.PutEventsOutput{FailedEntryCount: f.failed}
	for range in.Entries {
		out.Entries = append(out.Entries, types.PutEventsResultEntry{EventId: aws.String("id")})
	}
	if f.failed > 0 {
		out.Entries[0] = types.PutEventsResultEntry{ErrorCode: aws.String("InternalFailure"), ErrorMessage: aws.String("boom")}
	}
	return out, nil
}

func journeyEvents(n int) []events.DomainEvent {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]events.DomainEvent, n)
	for i := range out {
		out[i] = events.NewJourneyEvent(events.TypeJourneyUpdated, "journey-1", "Welcome Flow", "draft", 1, 2, 1, ts)
	}
	return out
}

func TestPublisher_Publish(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "journeys-bus", nil)

	require.NoError(t, p.Publish(context.Background(), journeyEvents(1)[0]))
	require.Len(t, client.calls, 1)
	require.Len(t, client.calls[0].Entries, 1)

	entry := client.calls[0].Entries[0]
	assert.Equal(t, "journeys-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeJourneyUpdated, aws.ToString(entry.DetailType))
	assert.Equal(t, []string{"journeybuilder:journey-1"}, entry.Resources)

	var detail map[string]any
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "Welcome Flow", detail["name"])
	assert.Equal(t, "journey-1", detail["aggregate_id"])
}

func TestPublisher_PublishBatchChunks(t *testing.T) {
	tests := []struct {
		name  string
		count int
		sizes []int
	}{
		{"empty", 0, nil},
		{"single chunk", 10, []int{10}},
		{"spills over", 23, []int{10, 10, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			p := NewPublisher(client, "bus", nil)
			require.NoError(t, p.PublishBatch(context.Background(), journeyEvents(tt.count)))

			var sizes []int
			for _, c := range client.calls {
				sizes = append(sizes, len(c.Entries))
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestPublisher_Failures(t *testing.T) {
	boom := errors.New("network down")
	p := NewPublisher(&fakeClient{err: boom}, "bus", nil)
	assert.ErrorIs(t, p.Publish(context.Background(), journeyEvents(1)[0]), boom)

	p = NewPublisher(&fakeClient{failed: 1}, "bus", nil)
	err := p.PublishBatch(context.Background(), journeyEvents(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 events failed to publish")
}
