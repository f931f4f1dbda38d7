package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())

	m.ObserveSnapshot("journey-store", 512, 2*time.Millisecond, nil)
	m.ObserveSnapshot("journey-store", 0, time.Millisecond, errors.New("disk full"))
	m.ObserveSnapshot("ui-store", 0, time.Second, context.DeadlineExceeded)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotWrites.WithLabelValues("journey-store", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotWrites.WithLabelValues("journey-store", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotWrites.WithLabelValues("ui-store", "timeout")))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.snapshotBytes.WithLabelValues("journey-store")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())
	m.ObserveRequest("/api/v1/journeys", "GET", 200, 10*time.Millisecond)
	m.ObserveRequest("/api/v1/journeys", "GET", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/v1/journeys", "GET", "200")))

	n, err := testutil.GatherAndCount(m.Registry(), "journeybuilder_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewMetrics_RegistersRuntimeCollectors(t *testing.T) {
	m := NewMetrics()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}
