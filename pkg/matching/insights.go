package matching

import (
	"fmt"
	"math"

	"github.com/hbracken/fedlease/pkg/scoring"
)

// Insight thresholds. A factor at or above strongThreshold reads as a
// selling point; below weakThreshold it needs addressing in the offer.
const (
	strongThreshold = 85.0
	weakThreshold   = 60.0
)

func deriveInsights(factors []scoring.FactorScore, p *PropertyData, o *OpportunityRequirements) (strengths, weaknesses, recommendations []string) {
	for _, f := range factors {
		switch {
		case f.Score >= strongThreshold:
			strengths = append(strengths, fmt.Sprintf("%s: %s", f.Name, f.Explanation))
		case f.Score < weakThreshold:
			weaknesses = append(weaknesses, fmt.Sprintf("%s: %s", f.Name, f.Explanation))
			recommendations = append(recommendations, recommendFor(f, p, o))
		}
	}
	return strengths, weaknesses, recommendations
}

// recommendFor maps a weak factor to a concrete next step for the offer.
func recommendFor(f scoring.FactorScore, p *PropertyData, o *OpportunityRequirements) string {
	switch f.Name {
	case FactorLocation:
		return "address the market mismatch in the offer narrative or identify a property in the preferred city"
	case FactorSpace:
		if p.MinDivisibleSF > o.MinSquareFeet && o.MinSquareFeet > 0 {
			return "offer a demising plan to bring the divisible block down to the requested size"
		}
		return "document how the available block will be configured to the requested footage"
	case FactorBuilding:
		return "price the missing amenities as tenant improvements and include a build-out schedule"
	case FactorTimeline:
		return "provide a phased occupancy plan or negotiate the occupancy date"
	case FactorExperience:
		return "partner with a broker who has GSA leasing experience"
	default:
		return fmt.Sprintf("improve the %s factor before submitting", f.Name)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
