package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIndexMetrics() {
	r.IndexPropertiesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fedlease_index_properties_total",
			Help: "Number of properties currently held in the spatial index",
		},
	)

	r.IndexBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_index_builds_total",
			Help: "Total number of index builds",
		},
		[]string{"mode", "status"}, // mode: bulk, incremental
	)

	r.IndexBuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fedlease_index_build_duration_seconds",
			Help:    "Index build duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"mode"},
	)

	r.IndexQueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_index_queries_total",
			Help: "Total number of spatial index queries",
		},
		[]string{"query_type"}, // radius, bounds, nearest
	)

	r.IndexQueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fedlease_index_query_duration_seconds",
			Help:    "Spatial query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"query_type"},
	)

	r.IndexResultsPerQuery = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fedlease_index_results_per_query",
			Help:    "Number of properties returned per spatial query",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"query_type"},
	)

	r.IndexLastRefreshTime = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fedlease_index_last_refresh_timestamp_seconds",
			Help: "Unix timestamp of the last successful index refresh",
		},
	)
}
