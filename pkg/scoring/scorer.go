// Package scoring computes the Federal Neighborhood Score: a composite
// 0-100 measure of federal leasing desirability around a point, decomposed
// into six weighted factors derived from a spatial-index radius search.
//
// The computation is pure: identical inputs against an unmodified index
// produce identical output apart from the calculated/expires timestamps.
package scoring

import (
	"errors"
	"math"
	"time"

	"github.com/hbracken/fedlease/pkg/property"
)

// RadiusSearcher is the slice of the spatial index the scorer needs.
// *rtree.RTree satisfies it.
type RadiusSearcher interface {
	SearchRadius(lat, lng, radiusMiles float64) []*property.FederalProperty
}

// ErrNoIndex is returned when a score is requested without a spatial index.
// The scorer never builds or fetches an index itself; that orchestration
// belongs to the caller.
var ErrNoIndex = errors.New("scoring: no spatial index provided")

// ErrBadRadius is returned for non-positive search radii.
var ErrBadRadius = errors.New("scoring: radius must be positive")

// CalculateNeighborhoodScore runs a radius search against the index and
// produces the full factor breakdown, percentile, and letter grade.
//
// Zero properties in the radius is a valid, degenerate input: the result is
// a well-formed score of 0 with grade "F" and explanatory factor text, not
// an error.
func CalculateNeighborhoodScore(index RadiusSearcher, lat, lng, radiusMiles float64) (*NeighborhoodScore, error) {
	if index == nil {
		return nil, ErrNoIndex
	}
	if radiusMiles <= 0 {
		return nil, ErrBadRadius
	}

	now := time.Now()
	props := index.SearchRadius(lat, lng, radiusMiles)
	metrics := deriveMetrics(props, radiusMiles, now)

	factors := []FactorScore{
		densityFactor(metrics),
		leaseActivityFactor(metrics),
		expiringLeasesFactor(metrics),
		demandFactor(metrics),
		vacancyFactor(metrics),
		growthFactor(metrics),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}
	score := round1(total)

	return &NeighborhoodScore{
		Score:      score,
		Grade:      GradeForScore(score),
		Percentile: computePercentile(metrics),
		Factors:    factors,
		Metrics:    metrics,
		Location: Location{
			Latitude:    lat,
			Longitude:   lng,
			RadiusMiles: radiusMiles,
		},
		CalculatedAt: now,
		ExpiresAt:    now.Add(ScoreTTL),
	}, nil
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
