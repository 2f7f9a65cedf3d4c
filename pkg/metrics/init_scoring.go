package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initScoringMetrics() {
	r.ScoresComputedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_scores_computed_total",
			Help: "Total number of neighborhood scores computed",
		},
		[]string{"status"}, // success, error
	)

	r.ScoreDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fedlease_score_duration_seconds",
			Help:    "Neighborhood score computation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	r.ScoreDistribution = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fedlease_score_distribution",
			Help:    "Distribution of computed neighborhood scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	r.ScoreGradesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_score_grades_total",
			Help: "Neighborhood scores by letter grade",
		},
		[]string{"grade"},
	)
}
