package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/hbracken/fedlease/pkg/scoring"
)

// factorCalc pairs a factor name with its scoring function. The matcher
// walks a slice of these so tests can instrument invocation counts.
type factorCalc struct {
	name string
	fn   func(p *PropertyData, o *OpportunityRequirements, b *BrokerExperience, now time.Time) scoring.FactorScore
}

func defaultFactors() []factorCalc {
	return []factorCalc{
		{FactorLocation, locationFactor},
		{FactorSpace, spaceFactor},
		{FactorBuilding, buildingFactor},
		{FactorTimeline, timelineFactor},
		{FactorExperience, experienceFactor},
	}
}

// locationFactor scores geographic fit. The state already matched (the
// pipeline guarantees it), so this grades city-level fit.
func locationFactor(p *PropertyData, o *OpportunityRequirements, _ *BrokerExperience, _ time.Time) scoring.FactorScore {
	var score float64
	var explanation string
	switch {
	case o.City == "":
		score = 85
		explanation = fmt.Sprintf("state %s matches; opportunity has no city preference", p.State)
	case strings.EqualFold(p.City, o.City):
		score = 100
		explanation = fmt.Sprintf("property is in the required market (%s, %s)", o.City, o.State)
	default:
		score = 70
		explanation = fmt.Sprintf("property is in %s; opportunity prefers %s", p.City, o.City)
	}
	return factor(FactorLocation, score, WeightLocation, explanation)
}

// spaceFactor scores how well the available footage fits the requested
// range. Close-to-minimum availability is ideal; heavy oversupply only
// works when the block can be divided down to the requested size.
func spaceFactor(p *PropertyData, o *OpportunityRequirements, _ *BrokerExperience, _ time.Time) scoring.FactorScore {
	if o.MinSquareFeet <= 0 {
		return factor(FactorSpace, 75, WeightSpace, "opportunity did not specify a square footage range")
	}

	ratio := p.AvailableSF / o.MinSquareFeet
	divisible := p.MinDivisibleSF > 0 && p.MinDivisibleSF <= o.MinSquareFeet

	var score float64
	switch {
	case ratio <= 1.25:
		score = 100
	case ratio <= 2.0:
		score = 90
	case ratio <= 4.0:
		score = 75
	default:
		score = 60
	}
	if ratio > 2.0 && divisible {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	return factor(FactorSpace, score, WeightSpace,
		fmt.Sprintf("%.0f SF available against a %.0f SF minimum (%.1fx)",
			p.AvailableSF, o.MinSquareFeet, ratio))
}

// buildingFactor starts at 100 and deducts for each required amenity the
// building lacks. SCIF, fiber, power, parking and class live here rather
// than in the disqualification pipeline: they are negotiable build-outs,
// not hard eligibility gates.
func buildingFactor(p *PropertyData, o *OpportunityRequirements, _ *BrokerExperience, _ time.Time) scoring.FactorScore {
	score := 100.0
	var gaps []string

	if len(o.BuildingClasses) > 0 && !containsFold(o.BuildingClasses, p.BuildingClass) {
		score -= 30
		gaps = append(gaps, fmt.Sprintf("class %s outside required %s",
			orNone(p.BuildingClass), strings.Join(o.BuildingClasses, "/")))
	}
	if o.SCIFRequired && !p.SCIFCapable {
		score -= 25
		gaps = append(gaps, "no SCIF capability")
	}
	if o.FiberRequired && !p.FiberConnectivity {
		score -= 15
		gaps = append(gaps, "no fiber connectivity")
	}
	if o.BackupPowerRequired && !p.BackupPower {
		score -= 15
		gaps = append(gaps, "no backup power")
	}
	if o.ParkingRatioPer1000SF > 0 && p.ParkingSpacesPer1000SF < o.ParkingRatioPer1000SF {
		score -= 15
		gaps = append(gaps, fmt.Sprintf("parking %.1f/1000SF below required %.1f",
			p.ParkingSpacesPer1000SF, o.ParkingRatioPer1000SF))
	}
	if score < 0 {
		score = 0
	}

	explanation := "building meets all required amenities"
	if len(gaps) > 0 {
		explanation = strings.Join(gaps, "; ")
	}
	return factor(FactorBuilding, score, WeightBuilding, explanation)
}

// timelineFactor scores how comfortably the property's availability date
// precedes the opportunity's occupancy need.
func timelineFactor(p *PropertyData, o *OpportunityRequirements, _ *BrokerExperience, now time.Time) scoring.FactorScore {
	if o.OccupancyDate.IsZero() {
		return factor(FactorTimeline, 75, WeightTimeline, "opportunity did not specify an occupancy date")
	}

	available := p.AvailableDate
	if available.IsZero() {
		available = now
	}

	lead := o.OccupancyDate.Sub(available)
	leadDays := int(lead.Hours() / 24)

	var score float64
	switch {
	case leadDays >= 90:
		score = 100
	case leadDays >= 30:
		score = 85
	case leadDays >= 0:
		score = 70
	case leadDays >= -90:
		score = 40
	default:
		score = 10
	}

	var explanation string
	if leadDays >= 0 {
		explanation = fmt.Sprintf("available %d days before required occupancy", leadDays)
	} else {
		explanation = fmt.Sprintf("available %d days after required occupancy", -leadDays)
	}
	return factor(FactorTimeline, score, WeightTimeline, explanation)
}

// experienceFactor scores the broker's government-leasing track record.
// Missing experience data scores 0, not an error.
func experienceFactor(_ *PropertyData, _ *OpportunityRequirements, b *BrokerExperience, _ time.Time) scoring.FactorScore {
	if b == nil {
		return factor(FactorExperience, 0, WeightExperience, "no broker experience provided")
	}

	score := 0.0
	var notes []string

	if b.GovernmentLeasing {
		score += 40
		notes = append(notes, "government leasing experience")
	}
	if b.GSALeaseCount > 0 {
		leaseScore := float64(b.GSALeaseCount) * 3
		if leaseScore > 30 {
			leaseScore = 30
		}
		score += leaseScore
		notes = append(notes, fmt.Sprintf("%d GSA leases completed", b.GSALeaseCount))
	}
	if len(b.Certifications) > 0 {
		score += 15
		notes = append(notes, strings.Join(b.Certifications, ", "))
	}
	switch {
	case b.PortfolioSF >= 1_000_000:
		score += 15
		notes = append(notes, "1M+ SF portfolio")
	case b.PortfolioSF >= 250_000:
		score += 10
		notes = append(notes, "250K+ SF portfolio")
	}
	if score > 100 {
		score = 100
	}

	explanation := "no government leasing track record"
	if len(notes) > 0 {
		explanation = strings.Join(notes, "; ")
	}
	return factor(FactorExperience, score, WeightExperience, explanation)
}

func factor(name string, score, weight float64, explanation string) scoring.FactorScore {
	return scoring.FactorScore{
		Name:        name,
		Score:       score,
		Weight:      weight,
		Weighted:    score * weight / 100,
		Explanation: explanation,
	}
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
