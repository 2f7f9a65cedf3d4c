package scoring

import (
	"fmt"
)

// The factor scores below are stepped lookups against fixed thresholds, not
// continuous formulas. The breakpoints are part of the scoring contract and
// must not drift; the trend analyses published against historical scores
// depend on them.

// densityFactor scores federal properties per square mile. Saturates at
// 20/sq-mi; below 1/sq-mi the score scales linearly down to 0.
func densityFactor(m NeighborhoodMetrics) FactorScore {
	perSqMi := 0.0
	if m.AreaSqMiles > 0 {
		perSqMi = float64(m.TotalProperties) / m.AreaSqMiles
	}

	var score float64
	switch {
	case perSqMi >= 20:
		score = 100
	case perSqMi >= 15:
		score = 90
	case perSqMi >= 10:
		score = 80
	case perSqMi >= 7:
		score = 70
	case perSqMi >= 5:
		score = 60
	case perSqMi >= 3:
		score = 50
	case perSqMi >= 2:
		score = 40
	case perSqMi >= 1:
		score = 30
	default:
		score = perSqMi * 30
	}

	return makeFactor(FactorDensity, score, WeightDensity,
		fmt.Sprintf("%.2f federal properties per square mile (%d in %.1f mi radius)",
			perSqMi, m.TotalProperties, m.RadiusMiles))
}

// leaseActivityFactor scores the leased-vs-owned mix. A 40-60%% leased share
// is the optimum (active leasing market with owned anchors); the score falls
// off in symmetric bands outside it.
func leaseActivityFactor(m NeighborhoodMetrics) FactorScore {
	if m.TotalProperties == 0 {
		return makeFactor(FactorLeaseActivity, 0, WeightLeaseActivity,
			"No federal properties in search radius")
	}

	leasedPct := float64(m.LeasedCount) / float64(m.TotalProperties) * 100

	var score float64
	switch {
	case leasedPct >= 40 && leasedPct <= 60:
		score = 100
	case leasedPct >= 30 && leasedPct <= 70:
		score = 80
	case leasedPct >= 20 && leasedPct <= 80:
		score = 60
	case leasedPct >= 10 && leasedPct <= 90:
		score = 40
	default:
		score = 20
	}

	return makeFactor(FactorLeaseActivity, score, WeightLeaseActivity,
		fmt.Sprintf("%.0f%% of %d properties are leased", leasedPct, m.TotalProperties))
}

// expiringLeasesFactor scores upcoming lease turnover. More expirations in
// the next 24 months mean more competable opportunities; saturates at 30.
func expiringLeasesFactor(m NeighborhoodMetrics) FactorScore {
	count := m.ExpiringLeases24Mo

	var score float64
	switch {
	case count >= 30:
		score = 100
	case count >= 20:
		score = 90
	case count >= 15:
		score = 80
	case count >= 10:
		score = 70
	case count >= 5:
		score = 60
	case count >= 3:
		score = 50
	case count >= 1:
		score = 40
	default:
		score = 0
	}

	explanation := fmt.Sprintf("%d leases expiring within 24 months", count)
	if count == 0 {
		explanation = "No leases expiring within 24 months"
	}
	return makeFactor(FactorExpiringLeases, score, WeightExpiringLeases, explanation)
}

// demandFactor scores the total federal footprint by RSF. Saturates at 10M
// RSF; below 100K the score scales linearly.
func demandFactor(m NeighborhoodMetrics) FactorScore {
	rsf := m.TotalRSF

	var score float64
	switch {
	case rsf >= 10_000_000:
		score = 100
	case rsf >= 5_000_000:
		score = 90
	case rsf >= 2_000_000:
		score = 80
	case rsf >= 1_000_000:
		score = 70
	case rsf >= 500_000:
		score = 60
	case rsf >= 250_000:
		score = 50
	case rsf >= 100_000:
		score = 40
	default:
		score = rsf / 100_000 * 40
	}

	return makeFactor(FactorDemand, score, WeightDemand,
		fmt.Sprintf("%.1fM total rentable square feet across %d properties",
			rsf/1_000_000, m.TotalProperties))
}

// vacancyFactor scores vacant share of RSF, inverted: lower vacancy means a
// tighter market and a better score. Saturates at 5%% or less.
func vacancyFactor(m NeighborhoodMetrics) FactorScore {
	if m.TotalProperties == 0 || m.TotalRSF == 0 {
		return makeFactor(FactorVacancy, 0, WeightVacancy,
			"No federal properties in search radius")
	}

	vacantPct := m.VacantRSF / m.TotalRSF * 100

	var score float64
	switch {
	case vacantPct <= 5:
		score = 100
	case vacantPct <= 10:
		score = 90
	case vacantPct <= 15:
		score = 80
	case vacantPct <= 20:
		score = 70
	case vacantPct <= 25:
		score = 60
	case vacantPct <= 30:
		score = 50
	default:
		score = 100 - 2*vacantPct
		if score < 0 {
			score = 0
		}
	}

	return makeFactor(FactorVacancy, score, WeightVacancy,
		fmt.Sprintf("%.1f%% of rentable square footage is vacant", vacantPct))
}

// growthFactor scores recent construction share. Saturates at 20%% of
// properties built in the last 5 years; below 3%% scales linearly.
func growthFactor(m NeighborhoodMetrics) FactorScore {
	if m.TotalProperties == 0 {
		return makeFactor(FactorGrowth, 0, WeightGrowth,
			"No federal properties in search radius")
	}

	recentPct := float64(m.BuiltLast5Years) / float64(m.TotalProperties) * 100

	var score float64
	switch {
	case recentPct >= 20:
		score = 100
	case recentPct >= 15:
		score = 90
	case recentPct >= 10:
		score = 80
	case recentPct >= 7:
		score = 70
	case recentPct >= 5:
		score = 60
	case recentPct >= 3:
		score = 50
	default:
		score = recentPct / 3 * 50
	}

	return makeFactor(FactorGrowth, score, WeightGrowth,
		fmt.Sprintf("%.0f%% of properties built in the last %d years",
			recentPct, recentConstructionYears))
}

// makeFactor fills in the weighted contribution for a factor.
func makeFactor(name string, score, weight float64, explanation string) FactorScore {
	return FactorScore{
		Name:        name,
		Score:       score,
		Weight:      weight,
		Weighted:    score * weight / 100,
		Explanation: explanation,
	}
}
