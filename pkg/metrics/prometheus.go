package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus metrics of a scoring run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Ingestion
	entriesRanked prometheus.Counter

	// Scoring
	eventsScored         *prometheus.CounterVec
	resultsScored        prometheus.Counter
	entriesSkipped       prometheus.Counter
	lookupFailures       *prometheus.CounterVec
	eventScoringDuration prometheus.Histogram

	// Run
	runDuration prometheus.Gauge
	lastRunUnix prometheus.Gauge
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
		namespace:        "meetscore",
		subsystem:        "scoring",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
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

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.entriesRanked = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_ranked_total",
		Help:        "Total number of meet entries grouped and ranked",
		ConstLabels: m.constLabels,
	})

	m.eventsScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_scored_total",
		Help:        "Total number of events scored, by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.resultsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "results_scored_total",
		Help:        "Total number of swimmer results converted to points",
		ConstLabels: m.constLabels,
	})

	m.entriesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_skipped_total",
		Help:        "Total number of entries skipped for lacking a final time",
		ConstLabels: m.constLabels,
	})

	m.lookupFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lookup_failures_total",
		Help:        "Total number of events with no reference data in the score table",
		ConstLabels: m.constLabels,
	}, []string{"event"})

	m.eventScoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "event_duration_milliseconds",
		Help:        "Time spent scoring one event in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Duration of the last scoring run",
		ConstLabels: m.constLabels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time the last scoring run finished",
		ConstLabels: m.constLabels,
	})
}

// RecordEntriesRanked adds n ranked entries.
func (m *Manager) RecordEntriesRanked(n int) {
	if m.enabled {
		m.entriesRanked.Add(float64(n))
	}
}

// RecordEventScored counts one event by outcome.
func (m *Manager) RecordEventScored(ok bool) {
	if !m.enabled {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.eventsScored.WithLabelValues(outcome).Inc()
}

// RecordResultsScored adds n scored results.
func (m *Manager) RecordResultsScored(n int) {
	if m.enabled {
		m.resultsScored.Add(float64(n))
	}
}

// RecordEntriesSkipped adds n entries without a final time.
func (m *Manager) RecordEntriesSkipped(n int) {
	if m.enabled {
		m.entriesSkipped.Add(float64(n))
	}
}

// RecordLookupFailure counts a missing score table entry for event.
func (m *Manager) RecordLookupFailure(event string) {
	if m.enabled {
		m.lookupFailures.WithLabelValues(event).Inc()
	}
}

// RecordEventDuration observes the time spent scoring one event.
func (m *Manager) RecordEventDuration(d time.Duration) {
	if m.enabled {
		m.eventScoringDuration.Observe(float64(d) / float64(time.Millisecond))
	}
}

// RecordRun stores the duration and finish time of a run.
func (m *Manager) RecordRun(d time.Duration, finished time.Time) {
	if !m.enabled {
		return
	}
	m.runDuration.Set(d.Seconds())
	m.lastRunUnix.Set(float64(finished.Unix()))
}

// WriteTextfile writes every metric of the manager's registry to path in the
// Prometheus text format, for pickup by a textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	g, ok := m.registry.(prometheus.Gatherer)
	if !ok {
		return fmt.Errorf("%w: registry cannot be gathered", ErrWriteFailed)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Default returns the global manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry { return customRegistry }

// WriteTextfile writes the global metrics to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
