package matching

import (
	"errors"
	"time"

	"github.com/hbracken/fedlease/pkg/scoring"
)

var (
	// ErrNilProperty is returned when the property input is missing.
	ErrNilProperty = errors.New("matching: property is nil")
	// ErrNilOpportunity is returned when the opportunity input is missing.
	ErrNilOpportunity = errors.New("matching: opportunity requirements are nil")
)

// Matcher evaluates property-opportunity pairs. The zero value is not
// usable; construct with NewMatcher.
type Matcher struct {
	stages  []constraintCheck
	factors []factorCalc
	now     func() time.Time
}

// NewMatcher returns a Matcher with the standard constraint pipeline and
// factor set.
func NewMatcher() *Matcher {
	return &Matcher{
		stages:  pipeline(),
		factors: defaultFactors(),
		now:     time.Now,
	}
}

// CalculatePropertyOpportunityMatch runs the full evaluation: the
// disqualification pipeline first, then weighted factor scoring only if
// every constraint passes. The first failing constraint short-circuits
// the evaluation; no factor function runs for a disqualified property.
func (m *Matcher) CalculatePropertyOpportunityMatch(p *PropertyData, o *OpportunityRequirements, b *BrokerExperience) (*MatchingResult, error) {
	start := m.now()
	if p == nil {
		return nil, ErrNilProperty
	}
	if o == nil {
		return nil, ErrNilOpportunity
	}

	passed := make([]string, 0, len(m.stages))
	for i, stage := range m.stages {
		ok, reason := stage.check(p, o)
		if !ok {
			return &MatchingResult{
				Qualified:         false,
				Score:             0,
				Grade:             scoring.GradeForScore(0),
				FailedConstraint:  stage.name,
				FailedStage:       i,
				Reason:            reason,
				PassedConstraints: passed,
				ComputationTime:   m.now().Sub(start),
			}, nil
		}
		passed = append(passed, stage.name)
	}

	now := m.now()
	factors := make([]scoring.FactorScore, 0, len(m.factors))
	total := 0.0
	for _, fc := range m.factors {
		fs := fc.fn(p, o, b, now)
		factors = append(factors, fs)
		total += fs.Weighted
	}
	total = round1(total)

	result := &MatchingResult{
		Qualified:         true,
		Score:             total,
		Grade:             scoring.GradeForScore(total),
		Competitive:       total >= CompetitiveThreshold,
		FailedStage:       -1,
		PassedConstraints: passed,
		Factors:           factors,
		ComputationTime:   m.now().Sub(start),
	}
	result.Strengths, result.Weaknesses, result.Recommendations = deriveInsights(factors, p, o)
	return result, nil
}

// CalculatePropertyOpportunityMatch evaluates one pair with a fresh
// default matcher. Convenience for callers that don't keep a Matcher.
func CalculatePropertyOpportunityMatch(p *PropertyData, o *OpportunityRequirements, b *BrokerExperience) (*MatchingResult, error) {
	return NewMatcher().CalculatePropertyOpportunityMatch(p, o, b)
}
