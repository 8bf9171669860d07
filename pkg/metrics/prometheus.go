// Package metrics provides Prometheus metrics for the foaas client.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for request metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Manager manages all Prometheus metrics for the client.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Request metrics
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge

	// Failure metrics by kind (request, transport, status, decode)
	errorsByKind *prometheus.CounterVec

	// Batch metrics
	batchSize prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "foaas",
		subsystem:        "client",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "requests_total",
			Help:        "Total number of endpoint invocations by endpoint and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "outcome"},
	)

	m.requestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "request_duration_milliseconds",
			Help:        "Endpoint invocation round trip in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "outcome"},
	)

	m.inFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "requests_in_flight",
		Help:        "Number of invocations currently waiting on the network",
		ConstLabels: m.constLabels,
	})

	m.errorsByKind = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Total number of failed invocations by failure kind",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_size",
		Help:        "Number of invocations submitted per batch",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		ConstLabels: m.constLabels,
	})
}

// RecordRequest records one finished invocation and its latency.
func (m *Manager) RecordRequest(endpoint, outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.requestDuration.WithLabelValues(endpoint, outcome).Observe(durationMs)
}

// RecordError increments the failure counter for kind.
func (m *Manager) RecordError(kind string) {
	if !m.enabled {
		return
	}
	m.errorsByKind.WithLabelValues(kind).Inc()
}

// IncInFlight marks one invocation as started.
func (m *Manager) IncInFlight() {
	if m.enabled {
		m.inFlight.Inc()
	}
}

// DecInFlight marks one invocation as finished.
func (m *Manager) DecInFlight() {
	if m.enabled {
		m.inFlight.Dec()
	}
}

// RecordBatchSize observes the size of a submitted batch.
func (m *Manager) RecordBatchSize(n int) {
	if m.enabled {
		m.batchSize.Observe(float64(n))
	}
}

// RecordRequest records one finished invocation on the global manager.
func RecordRequest(endpoint, outcome string, durationMs float64) {
	globalManager.RecordRequest(endpoint, outcome, durationMs)
}

// RecordError increments the global failure counter for kind.
func RecordError(kind string) {
	globalManager.RecordError(kind)
}

// IncInFlight marks one invocation as started on the global manager.
func IncInFlight() {
	globalManager.IncInFlight()
}

// DecInFlight marks one invocation as finished on the global manager.
func DecInFlight() {
	globalManager.DecInFlight()
}

// RecordBatchSize observes a batch size on the global manager.
func RecordBatchSize(n int) {
	globalManager.RecordBatchSize(n)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteText renders the global registry in the Prometheus text exposition format.
func WriteText(w io.Writer) error {
	return Encode(w, customRegistry)
}

// Encode gathers g and writes every family to w as Prometheus text.
func Encode(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGather, err)
	}
	return encodeFamilies(w, families)
}

func encodeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrEncode, mf.GetName(), err)
		}
	}
	return nil
}
