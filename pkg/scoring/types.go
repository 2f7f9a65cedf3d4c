package scoring

import (
	"time"
)

// FactorScore is one independently interpretable component of a composite
// score: a 0-100 score, the weight it carries, the weighted contribution it
// adds, and a human-readable explanation. The matcher reuses this shape so
// callers see a uniform factor breakdown everywhere.
type FactorScore struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Weighted    float64 `json:"weighted"`
	Explanation string  `json:"explanation"`
}

// NeighborhoodMetrics holds the raw counts and sums derived from a radius
// search, computed once per query and passed by value to each factor
// calculator. A concrete struct, not a dynamic bag: stringly-typed field
// access was how the old reporting pipeline grew scoring bugs.
type NeighborhoodMetrics struct {
	TotalProperties    int     `json:"totalProperties"`
	LeasedCount        int     `json:"leasedCount"`
	OwnedCount         int     `json:"ownedCount"`
	TotalRSF           float64 `json:"totalRsf"`
	VacantRSF          float64 `json:"vacantRsf"`
	ExpiringLeases24Mo int     `json:"expiringLeases24mo"`
	BuiltLast5Years    int     `json:"builtLast5Years"`
	RadiusMiles        float64 `json:"radiusMiles"`
	AreaSqMiles        float64 `json:"areaSqMiles"`
}

// Location is the query point and radius a score was computed for.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusMiles float64 `json:"radiusMiles"`
}

// NeighborhoodScore is the composite 0-100 desirability score for federal
// leasing activity around a point. Produced fresh on each query; callers
// may cache by (lat, lng, radius) until ExpiresAt.
type NeighborhoodScore struct {
	Score        float64             `json:"score"`
	Grade        string              `json:"grade"`
	Percentile   float64             `json:"percentile"`
	Factors      []FactorScore       `json:"factors"`
	Metrics      NeighborhoodMetrics `json:"metrics"`
	Location     Location            `json:"location"`
	CalculatedAt time.Time           `json:"calculatedAt"`
	ExpiresAt    time.Time           `json:"expiresAt"`
}

// ScoreTTL is how long a computed score stays representative before callers
// should recompute against a fresh index.
const ScoreTTL = 24 * time.Hour

// Factor weights, in percent. They sum to 100.
const (
	WeightDensity        = 25.0
	WeightLeaseActivity  = 25.0
	WeightExpiringLeases = 20.0
	WeightDemand         = 15.0
	WeightVacancy        = 10.0
	WeightGrowth         = 5.0
)

// Factor names as they appear in results.
const (
	FactorDensity        = "density"
	FactorLeaseActivity  = "lease_activity"
	FactorExpiringLeases = "expiring_leases"
	FactorDemand         = "demand"
	FactorVacancy        = "vacancy"
	FactorGrowth         = "growth"
)
