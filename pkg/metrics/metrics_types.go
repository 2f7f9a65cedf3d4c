package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Spatial Index Metrics
	IndexPropertiesTotal prometheus.Gauge
	IndexBuildsTotal     *prometheus.CounterVec
	IndexBuildDuration   *prometheus.HistogramVec
	IndexQueriesTotal    *prometheus.CounterVec
	IndexQueryDuration   *prometheus.HistogramVec
	IndexResultsPerQuery *prometheus.HistogramVec
	IndexLastRefreshTime prometheus.Gauge

	// Neighborhood Scoring Metrics
	ScoresComputedTotal *prometheus.CounterVec
	ScoreDuration       prometheus.Histogram
	ScoreDistribution   prometheus.Histogram
	ScoreGradesTotal    *prometheus.CounterVec

	// Matching Metrics
	MatchesComputedTotal   *prometheus.CounterVec
	MatchDuration          prometheus.Histogram
	MatchDisqualifiedTotal *prometheus.CounterVec
	MatchScoreDistribution prometheus.Histogram
	MatchCompetitiveTotal  prometheus.Counter

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initHTTPMetrics()
	r.initIndexMetrics()
	r.initScoringMetrics()
	r.initMatchingMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
