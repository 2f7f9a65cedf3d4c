package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordIndexBuild records a completed or failed index build
func (r *Registry) RecordIndexBuild(mode, status string, duration time.Duration, propertyCount int) {
	r.IndexBuildsTotal.WithLabelValues(mode, status).Inc()
	r.IndexBuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if status == "success" {
		r.IndexPropertiesTotal.Set(float64(propertyCount))
		r.IndexLastRefreshTime.Set(float64(time.Now().Unix()))
	}
}

// RecordIndexQuery records one spatial query
func (r *Registry) RecordIndexQuery(queryType string, duration time.Duration, resultCount int) {
	r.IndexQueriesTotal.WithLabelValues(queryType).Inc()
	r.IndexQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
	r.IndexResultsPerQuery.WithLabelValues(queryType).Observe(float64(resultCount))
}

// RecordScore records one neighborhood score computation
func (r *Registry) RecordScore(score float64, grade string, duration time.Duration, err error) {
	if err != nil {
		r.ScoresComputedTotal.WithLabelValues("error").Inc()
		return
	}
	r.ScoresComputedTotal.WithLabelValues("success").Inc()
	r.ScoreDuration.Observe(duration.Seconds())
	r.ScoreDistribution.Observe(score)
	r.ScoreGradesTotal.WithLabelValues(grade).Inc()
}

// RecordMatch records one match evaluation. A disqualification is a normal
// outcome and is recorded under its failing constraint.
func (r *Registry) RecordMatch(qualified bool, score float64, competitive bool, failedConstraint string, duration time.Duration) {
	r.MatchDuration.Observe(duration.Seconds())
	if !qualified {
		r.MatchesComputedTotal.WithLabelValues("disqualified").Inc()
		r.MatchDisqualifiedTotal.WithLabelValues(failedConstraint).Inc()
		return
	}
	r.MatchesComputedTotal.WithLabelValues("qualified").Inc()
	r.MatchScoreDistribution.Observe(score)
	if competitive {
		r.MatchCompetitiveTotal.Inc()
	}
}
