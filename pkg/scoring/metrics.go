package scoring

import (
	"math"
	"time"

	"github.com/hbracken/fedlease/pkg/property"
)

// expiringWindow is the lease-expiration lookahead the scorer counts.
const expiringWindow = 24 * 30 * 24 * time.Hour // 24 months

// recentConstructionYears bounds the growth factor's "built recently" test.
const recentConstructionYears = 5

// deriveMetrics aggregates a radius-search result into the raw numbers the
// factor calculators consume. Missing optional data (no lease expiration,
// no construction year) simply does not count toward its metric.
func deriveMetrics(props []*property.FederalProperty, radiusMiles float64, now time.Time) NeighborhoodMetrics {
	m := NeighborhoodMetrics{
		RadiusMiles: radiusMiles,
		AreaSqMiles: math.Pi * radiusMiles * radiusMiles,
	}

	for _, p := range props {
		m.TotalProperties++
		m.TotalRSF += p.RSF
		if p.Vacant {
			m.VacantRSF += p.VacantRSF
		}
		if p.IsLeased() {
			m.LeasedCount++
		} else {
			m.OwnedCount++
		}
		if p.LeaseExpiresWithin(now, expiringWindow) {
			m.ExpiringLeases24Mo++
		}
		if p.BuiltWithin(now, recentConstructionYears) {
			m.BuiltLast5Years++
		}
	}

	return m
}
