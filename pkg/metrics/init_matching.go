package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initMatchingMetrics() {
	r.MatchesComputedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_matches_computed_total",
			Help: "Total number of property-opportunity matches evaluated",
		},
		[]string{"outcome"}, // qualified, disqualified, error
	)

	r.MatchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fedlease_match_duration_seconds",
			Help:    "Match evaluation duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
	)

	r.MatchDisqualifiedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedlease_match_disqualified_total",
			Help: "Disqualifications by failing constraint",
		},
		[]string{"constraint"},
	)

	r.MatchScoreDistribution = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fedlease_match_score_distribution",
			Help:    "Distribution of qualified match scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	r.MatchCompetitiveTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "fedlease_match_competitive_total",
			Help: "Total number of matches at or above the competitive threshold",
		},
	)
}
