// Package metrics provides Prometheus metrics for the lottostats service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingest metrics
	drawsIngested  *prometheus.CounterVec
	drawsDuplicate *prometheus.CounterVec
	drawsRejected  *prometheus.CounterVec
	storedDraws    *prometheus.GaugeVec

	// Engine metrics
	recomputeTotal      *prometheus.CounterVec
	recomputeDuration   *prometheus.HistogramVec
	consistencyFailures *prometheus.CounterVec

	// Scrape metrics
	scrapeDuration *prometheus.HistogramVec
	scrapedDraws   *prometheus.CounterVec
	scrapeErrors   *prometheus.CounterVec

	// Queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueEnqueueErrs *prometheus.CounterVec

	// Worker metrics
	workerCount  prometheus.Gauge
	workerErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lottostats",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.drawsIngested = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "draws_ingested_total",
		Help: "Draw records accepted on the ingest path.",
	}, []string{"game"})
	m.drawsDuplicate = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "draws_duplicate_total",
		Help: "Draw records acknowledged as already seen.",
	}, []string{"game"})
	m.drawsRejected = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "draws_rejected_total",
		Help: "Draw records excluded as missing data during validation.",
	}, []string{"game"})
	m.storedDraws = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "stored_draws",
		Help: "Draw records currently held in the store.",
	}, []string{"game"})

	m.recomputeTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "recompute_total",
		Help: "Statistics recomputations completed.",
	}, []string{"game"})
	m.recomputeDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "recompute_duration_seconds",
		Help:    "Duration of one variant recomputation.",
		Buckets: m.histogramBuckets,
	}, []string{"game"})
	m.consistencyFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "consistency_check_failures_total",
		Help: "Verifier checks that failed, by check name.",
	}, []string{"game", "check"})

	m.scrapeDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "scrape_duration_seconds",
		Help:    "Duration of one results-page fetch and parse.",
		Buckets: m.histogramBuckets,
	}, []string{"game"})
	m.scrapedDraws = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "scraped_draws_total",
		Help: "Draw rows parsed from the results site.",
	}, []string{"game"})
	m.scrapeErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "scrape_errors_total",
		Help: "Failed results-page fetches.",
	}, []string{"game"})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Draw records currently queued for ingestion.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Capacity of the ingest queue.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Fill ratio of the ingest queue.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Records accepted onto the ingest queue.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Records drained from the ingest queue.",
	})
	m.queueEnqueueErrs = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Rejected enqueues, by reason.",
	}, []string{"reason"})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Running ingest workers.",
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Store appends that failed in a worker.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests served.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "component_errors_total",
		Help: "Errors by component and reason.",
	}, []string{"component", "reason"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_usage_bytes",
		Help: "Heap bytes currently allocated.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutine_count",
		Help: "Live goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_time_ms",
		Help:    "Average GC pause time in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100},
	})
}

// GetRegistry returns the registry backing the global manager, for
// exposition handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordDrawIngested(game string)  { globalManager.drawsIngested.WithLabelValues(game).Inc() }
func RecordDrawDuplicate(game string) { globalManager.drawsDuplicate.WithLabelValues(game).Inc() }

// RecordDrawsRejected counts records excluded as missing data.
func RecordDrawsRejected(game string, n int) {
	if n > 0 {
		globalManager.drawsRejected.WithLabelValues(game).Add(float64(n))
	}
}

func UpdateStoredDraws(game string, n int) {
	globalManager.storedDraws.WithLabelValues(game).Set(float64(n))
}

// RecordRecompute observes one completed variant recomputation.
func RecordRecompute(game string, seconds float64) {
	globalManager.recomputeTotal.WithLabelValues(game).Inc()
	globalManager.recomputeDuration.WithLabelValues(game).Observe(seconds)
}

func RecordConsistencyFailure(game, check string) {
	globalManager.consistencyFailures.WithLabelValues(game, check).Inc()
}

// RecordScrape observes one successful results-page fetch.
func RecordScrape(game string, seconds float64, draws int) {
	globalManager.scrapeDuration.WithLabelValues(game).Observe(seconds)
	globalManager.scrapedDraws.WithLabelValues(game).Add(float64(draws))
}

func RecordScrapeError(game string) { globalManager.scrapeErrors.WithLabelValues(game).Inc() }

func UpdateQueueSize(n int)           { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)       { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()             { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()             { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrs.WithLabelValues(reason).Inc()
}

func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerError()      { globalManager.workerErrors.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)     { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)   { globalManager.systemGCPauseTime.Observe(ms) }
