package observability

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "journeybuilder"

// Metrics holds the Prometheus collectors. It implements
// ports.SnapshotMetrics.
type Metrics struct {
	registry *prometheus.Registry

	snapshotWrites  *prometheus.CounterVec
	snapshotLatency *prometheus.HistogramVec
	snapshotBytes   *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry, including the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		snapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "writes_total",
			Help:      "Store snapshot writes by slot and outcome",
		}, []string{"slot", "status"}),
		snapshotLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "write_duration_seconds",
			Help:      "Store snapshot write latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"slot"}),
		snapshotBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "size_bytes",
			Help:      "Size of the last successful snapshot per slot",
		}, []string{"slot"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(m.snapshotWrites, m.snapshotLatency, m.snapshotBytes,
		m.httpRequests, m.httpLatency)
	return m
}

// Registry exposes the registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSnapshot records one snapshot write
func (m *Metrics) ObserveSnapshot(slot string, size int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		var te interface{ Timeout() bool }
		if errors.As(err, &te) && te.Timeout() {
			status = "timeout"
		}
	}
	m.snapshotWrites.WithLabelValues(slot, status).Inc()
	m.snapshotLatency.WithLabelValues(slot).Observe(elapsed.Seconds())
	if err == nil {
		m.snapshotBytes.WithLabelValues(slot).Set(float64(size))
	}
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
