package matching

import (
	"time"

	"github.com/hbracken/fedlease/pkg/scoring"
)

// PropertyData describes a candidate property offered against an
// opportunity. A plain value record; one match computation never mutates
// its inputs.
type PropertyData struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zipCode"`

	TotalSF        float64 `json:"totalSf"`
	AvailableSF    float64 `json:"availableSf"`
	MinDivisibleSF float64 `json:"minDivisibleSf"`
	Contiguous     bool    `json:"contiguous"`

	BuildingClass          string  `json:"buildingClass"`
	ADACompliant           bool    `json:"adaCompliant"`
	SCIFCapable            bool    `json:"scifCapable"`
	ClearanceLevel         string  `json:"clearanceLevel"` // "", "secret", "top_secret"
	FiberConnectivity      bool    `json:"fiberConnectivity"`
	BackupPower            bool    `json:"backupPower"`
	ParkingSpacesPer1000SF float64 `json:"parkingSpacesPer1000Sf"`

	AvailableDate     time.Time `json:"availableDate"`
	MinLeaseTermYears int       `json:"minLeaseTermYears"`
	MaxLeaseTermYears int       `json:"maxLeaseTermYears"`

	// SetAsideEligibility lists socioeconomic set-aside codes the offering
	// entity qualifies under (e.g. "SDVOSB", "8(a)", "HUBZone").
	SetAsideEligibility []string `json:"setAsideEligibility"`
}

// OpportunityRequirements is the structured form of a federal leasing
// opportunity's requirements, whether entered directly or extracted from
// the solicitation text.
type OpportunityRequirements struct {
	OpportunityID string `json:"opportunityId"`
	State         string `json:"state"`
	City          string `json:"city"`

	MinSquareFeet      float64 `json:"minSquareFeet"`
	MaxSquareFeet      float64 `json:"maxSquareFeet"`
	ContiguousRequired bool    `json:"contiguousRequired"`

	SetAside string `json:"setAside"`

	ADARequired         bool     `json:"adaRequired"`
	ClearanceRequired   string   `json:"clearanceRequired"` // "", "secret", "top_secret"
	SCIFRequired        bool     `json:"scifRequired"`
	FiberRequired       bool     `json:"fiberRequired"`
	BackupPowerRequired bool     `json:"backupPowerRequired"`
	BuildingClasses     []string `json:"buildingClasses"`

	ParkingRatioPer1000SF float64 `json:"parkingRatioPer1000Sf"`
	LeaseTermYears        int     `json:"leaseTermYears"`

	OccupancyDate    time.Time `json:"occupancyDate"`
	ResponseDeadline time.Time `json:"responseDeadline"`
}

// BrokerExperience is a broker's government-leasing track record.
type BrokerExperience struct {
	GovernmentLeasing bool     `json:"governmentLeasing"`
	GSALeaseCount     int      `json:"gsaLeaseCount"`
	YearsExperience   int      `json:"yearsExperience"`
	Certifications    []string `json:"certifications"`
	PortfolioSF       float64  `json:"portfolioSf"`
	References        int      `json:"references"`
}

// Constraint names, in pipeline order. The order is the architectural
// contract: historically most-selective first, so a non-qualifying
// property fails as early and as cheaply as possible.
const (
	ConstraintStateMatch = "STATE_MATCH"
	ConstraintRSFMinimum = "RSF_MINIMUM"
	ConstraintSetAside   = "SET_ASIDE"
	ConstraintADA        = "ADA"
	ConstraintClearance  = "CLEARANCE"
)

// Factor weights for the qualified scoring path, in percent. Sum to 100.
const (
	WeightLocation   = 30.0
	WeightSpace      = 25.0
	WeightBuilding   = 20.0
	WeightTimeline   = 15.0
	WeightExperience = 10.0
)

// Factor names.
const (
	FactorLocation   = "location"
	FactorSpace      = "space"
	FactorBuilding   = "building"
	FactorTimeline   = "timeline"
	FactorExperience = "experience"
)

// CompetitiveThreshold is the composite score at or above which a match is
// flagged as competitive.
const CompetitiveThreshold = 70.0

// MatchingResult is the outcome of one property-opportunity evaluation:
// either disqualified (score 0, the failing constraint and its stage) or
// qualified with the full factor breakdown. Disqualification is a normal
// outcome, not an error.
type MatchingResult struct {
	Qualified   bool    `json:"qualified"`
	Score       float64 `json:"score"`
	Grade       string  `json:"grade"`
	Competitive bool    `json:"competitive"`

	// Disqualification details; zero-valued on qualified results.
	FailedConstraint string `json:"failedConstraint,omitempty"`
	FailedStage      int    `json:"failedStage"` // 0-based; -1 when qualified
	Reason           string `json:"reason,omitempty"`

	PassedConstraints []string              `json:"passedConstraints"`
	Factors           []scoring.FactorScore `json:"factors,omitempty"`

	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	ComputationTime time.Duration `json:"computationTime"`
}
