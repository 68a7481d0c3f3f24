// Package metrics provides Prometheus metrics for the envcharts service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Load outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Chart loads
	loadsTotal   *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	seriesPoints *prometheus.GaugeVec

	// Upstream fetches
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec

	// Rendering
	rendersTotal  *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "envcharts",
		subsystem:        "dashboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.loadsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("loads_total"),
		Help:        "Total number of chart loads by variant and outcome",
		ConstLabels: labels,
	}, []string{"variant", "outcome"})

	m.loadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("load_duration_milliseconds"),
		Help:        "End-to-end chart load duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"variant"})

	m.seriesPoints = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("series_points"),
		Help:        "Number of bars in the last rendered series",
		ConstLabels: labels,
	}, []string{"series"})

	m.fetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("fetch_latency_milliseconds"),
		Help:        "Latency of metrics endpoint requests in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"status_code"})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("fetch_errors_total"),
		Help:        "Metrics endpoint failures by kind (transport, status, decode)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.rendersTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("renders_total"),
		Help:        "Total number of render calls by renderer and outcome",
		ConstLabels: labels,
	}, []string{"renderer", "outcome"})

	m.renderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("render_latency_milliseconds"),
		Help:        "Render latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"renderer"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often runtime gauges should be sampled.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordLoad counts a chart load and its duration.
func (m *Manager) RecordLoad(variant, outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.loadsTotal.WithLabelValues(variant, outcome).Inc()
	m.loadDuration.WithLabelValues(variant).Observe(durationMs)
}

// UpdateSeriesPoints sets the bar count for a rendered series.
func (m *Manager) UpdateSeriesPoints(series string, n int) {
	if !m.enabled {
		return
	}
	m.seriesPoints.WithLabelValues(series).Set(float64(n))
}

// RecordFetch records an upstream request latency.
func (m *Manager) RecordFetch(statusCode string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.fetchLatency.WithLabelValues(statusCode).Observe(latencyMs)
}

// RecordFetchError counts an upstream failure.
func (m *Manager) RecordFetchError(kind string) {
	if !m.enabled {
		return
	}
	m.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordRender counts a render call and its latency.
func (m *Manager) RecordRender(renderer, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.rendersTotal.WithLabelValues(renderer, outcome).Inc()
	m.renderLatency.WithLabelValues(renderer).Observe(latencyMs)
}

// RecordHTTPRequest counts an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an HTTP error by type and endpoint.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystem sets the runtime gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordGCPause observes an average GC pause.
func (m *Manager) RecordGCPause(pauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(pauseMs)
}

// RecordLoad counts a chart load on the global manager.
func RecordLoad(variant, outcome string, durationMs float64) {
	globalManager.RecordLoad(variant, outcome, durationMs)
}

// UpdateSeriesPoints sets the bar count for a series on the global manager.
func UpdateSeriesPoints(series string, n int) {
	globalManager.UpdateSeriesPoints(series, n)
}

// RecordFetch records an upstream request latency on the global manager.
func RecordFetch(statusCode string, latencyMs float64) {
	globalManager.RecordFetch(statusCode, latencyMs)
}

// RecordFetchError counts an upstream failure on the global manager.
func RecordFetchError(kind string) {
	globalManager.RecordFetchError(kind)
}

// RecordRender counts a render call on the global manager.
func RecordRender(renderer, outcome string, latencyMs float64) {
	globalManager.RecordRender(renderer, outcome, latencyMs)
}

// RecordHTTPRequest counts an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError counts an HTTP error on the global manager.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// UpdateSystem sets the runtime gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memBytes, goroutines)
}

// RecordGCPause observes an average GC pause on the global manager.
func RecordGCPause(pauseMs float64) {
	globalManager.RecordGCPause(pauseMs)
}

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
