// Package metrics provides Prometheus metrics for the valuation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "oppr"
	defaultSubsystem = "engine"
)

// Default histogram buckets.
var (
	defaultValueBuckets    = []float64{1, 5, 10, 25, 50, 75, 100, 150, 200, 300}
	defaultDurationBuckets = []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000}
)

// Manager owns the engine metrics on one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Valuation
	eventsValued    prometheus.Counter
	firstPlaceValue prometheus.Histogram

	// Distribution
	distributions     prometheus.Counter
	pointsDistributed prometheus.Counter

	// Decay batches
	decayBatches       prometheus.Counter
	decayItems         prometheus.Counter
	decayBatchDuration prometheus.Histogram

	// Validation and ratings
	validationErrors     *prometheus.CounterVec
	ratingUpdates        *prometheus.CounterVec
	registryLookupErrors prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: defaultDurationBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.eventsValued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_valued_total",
		Help:        "Total number of events valued",
		ConstLabels: labels,
	})

	m.firstPlaceValue = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "first_place_value",
		Help:        "Distribution of computed first-place values",
		Buckets:     defaultValueBuckets,
		ConstLabels: labels,
	})

	m.distributions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "distributions_total",
		Help:        "Total number of point distributions computed",
		ConstLabels: labels,
	})

	m.pointsDistributed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "points_distributed_total",
		Help:        "Sum of points awarded across all distributions",
		ConstLabels: labels,
	})

	m.decayBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "decay_batches_total",
		Help:        "Total number of decay recalculation batches",
		ConstLabels: labels,
	})

	m.decayItems = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "decay_items_total",
		Help:        "Total number of player events recalculated for decay",
		ConstLabels: labels,
	})

	m.decayBatchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "decay_batch_duration_milliseconds",
		Help:        "Decay batch duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.validationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "validation_errors_total",
			Help:        "Rejected inputs by offending field",
			ConstLabels: labels,
		},
		[]string{"field"},
	)

	m.ratingUpdates = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rating_updates_total",
			Help:        "Player rating updates by rating system",
			ConstLabels: labels,
		},
		[]string{"system"},
	)

	m.registryLookupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "registry_lookup_errors_total",
		Help:        "Lookups of unregistered rating systems",
		ConstLabels: labels,
	})
}

// RecordEventValued counts a valuation and observes its first-place value.
func (m *Manager) RecordEventValued(firstPlaceValue float64) {
	if !m.enabled {
		return
	}
	m.eventsValued.Inc()
	m.firstPlaceValue.Observe(firstPlaceValue)
}

// RecordDistribution counts a distribution and the points it handed out.
func (m *Manager) RecordDistribution(totalPoints float64) {
	if !m.enabled {
		return
	}
	m.distributions.Inc()
	if totalPoints > 0 {
		m.pointsDistributed.Add(totalPoints)
	}
}

// RecordDecayBatch counts a finished decay batch.
func (m *Manager) RecordDecayBatch(items int, durationMs float64) {
	if !m.enabled {
		return
	}
	m.decayBatches.Inc()
	m.decayItems.Add(float64(items))
	m.decayBatchDuration.Observe(durationMs)
}

// RecordValidationError counts one rejected field. An empty field is
// recorded as "unknown".
func (m *Manager) RecordValidationError(field string) {
	if !m.enabled {
		return
	}
	if field == "" {
		field = "unknown"
	}
	m.validationErrors.WithLabelValues(field).Inc()
}

// RecordRatingUpdates counts n player updates made by system.
func (m *Manager) RecordRatingUpdates(system string, n int) {
	if !m.enabled {
		return
	}
	m.ratingUpdates.WithLabelValues(system).Add(float64(n))
}

// RecordRegistryLookupError counts a lookup of an unknown rating system.
func (m *Manager) RecordRegistryLookupError() {
	if !m.enabled {
		return
	}
	m.registryLookupErrors.Inc()
}
