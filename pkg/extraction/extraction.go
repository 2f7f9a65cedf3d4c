// Package extraction mines structured leasing requirements out of
// free-text opportunity descriptions. Every extractor is best-effort: a
// pattern that does not match leaves its field unset, never an error.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hbracken/fedlease/pkg/matching"
)

// ExtractedRequirements is the partial, nullable form of
// matching.OpportunityRequirements. Nil means the description said
// nothing about that requirement, which is different from false or zero.
type ExtractedRequirements struct {
	MinSquareFeet         *float64 `json:"minSquareFeet,omitempty"`
	MaxSquareFeet         *float64 `json:"maxSquareFeet,omitempty"`
	BuildingClasses       []string `json:"buildingClasses,omitempty"`
	ADARequired           *bool    `json:"adaRequired,omitempty"`
	SCIFRequired          *bool    `json:"scifRequired,omitempty"`
	ClearanceRequired     *string  `json:"clearanceRequired,omitempty"`
	FiberRequired         *bool    `json:"fiberRequired,omitempty"`
	BackupPowerRequired   *bool    `json:"backupPowerRequired,omitempty"`
	ParkingRatioPer1000SF *float64 `json:"parkingRatioPer1000Sf,omitempty"`
	LeaseTermYears        *int     `json:"leaseTermYears,omitempty"`
	ContiguousRequired    *bool    `json:"contiguousRequired,omitempty"`
}

var (
	// GSA solicitations qualify footage as "rentable" or "ABOA"
	// (ANSI/BOMA Office Area); both are optional noise before the unit.
	sfRangeRe = regexp.MustCompile(`(?i)([\d,]+)\s*(?:to|-|–)\s*([\d,]+)\s*(?:(?:rentable|aboa)\s+)?(?:rsf|usf|sf|square\s+fe?e?t)`)
	sfMinRe   = regexp.MustCompile(`(?i)(?:minimum(?:\s+of)?|at\s+least|no\s+less\s+than)\s+([\d,]+)\s*(?:(?:rentable|aboa)\s+)?(?:rsf|usf|sf|square\s+fe?e?t)`)

	classAPlusRe = regexp.MustCompile(`(?i)class\s+a\+`)
	classARe     = regexp.MustCompile(`(?i)class\s+a\b`)

	adaRe       = regexp.MustCompile(`(?i)\bADA\b|americans\s+with\s+disabilities\s+act|accessib`)
	scifRe      = regexp.MustCompile(`(?i)\bSCIF\b|sensitive\s+compartmented\s+information\s+facilit`)
	topSecretRe = regexp.MustCompile(`(?i)top\s+secret|\bTS/SCI\b`)
	secretRe    = regexp.MustCompile(`(?i)secret\s+clearance`)

	fiberRe  = regexp.MustCompile(`(?i)fiber`)
	backupRe = regexp.MustCompile(`(?i)backup\s+power|emergency\s+power|standby\s+generator|backup\s+generator`)

	parkingRe   = regexp.MustCompile(`(?i)([\d.]+)\s+(?:parking\s+)?spaces?\s+per\s+1,?000\s*(?:rsf|sf|square\s+fe?e?t)`)
	leaseTermRe = regexp.MustCompile(`(?i)(\d+)[\s-]*year\s+(?:lease|term|firm)`)

	contiguousRe = regexp.MustCompile(`(?i)contiguous|single\s+floor|entire\s+floor`)
)

// Extract runs every extractor over the description text. Empty or
// uninformative text produces an empty record, not an error.
func Extract(text string) *ExtractedRequirements {
	e := &ExtractedRequirements{}
	if strings.TrimSpace(text) == "" {
		return e
	}

	e.MinSquareFeet, e.MaxSquareFeet = extractSquareFootage(text)
	e.BuildingClasses = extractBuildingClasses(text)
	e.ADARequired = flag(adaRe, text)
	e.SCIFRequired = flag(scifRe, text)
	e.ClearanceRequired = extractClearance(text)
	e.FiberRequired = flag(fiberRe, text)
	e.BackupPowerRequired = flag(backupRe, text)
	e.ParkingRatioPer1000SF = extractParkingRatio(text)
	e.LeaseTermYears = extractLeaseTerm(text)
	e.ContiguousRequired = flag(contiguousRe, text)
	return e
}

// Apply copies every extracted field onto an OpportunityRequirements,
// leaving fields the text never mentioned untouched.
func (e *ExtractedRequirements) Apply(o *matching.OpportunityRequirements) {
	if e.MinSquareFeet != nil {
		o.MinSquareFeet = *e.MinSquareFeet
	}
	if e.MaxSquareFeet != nil {
		o.MaxSquareFeet = *e.MaxSquareFeet
	}
	if len(e.BuildingClasses) > 0 {
		o.BuildingClasses = e.BuildingClasses
	}
	if e.ADARequired != nil {
		o.ADARequired = *e.ADARequired
	}
	if e.SCIFRequired != nil {
		o.SCIFRequired = *e.SCIFRequired
	}
	if e.ClearanceRequired != nil {
		o.ClearanceRequired = *e.ClearanceRequired
	}
	if e.FiberRequired != nil {
		o.FiberRequired = *e.FiberRequired
	}
	if e.BackupPowerRequired != nil {
		o.BackupPowerRequired = *e.BackupPowerRequired
	}
	if e.ParkingRatioPer1000SF != nil {
		o.ParkingRatioPer1000SF = *e.ParkingRatioPer1000SF
	}
	if e.LeaseTermYears != nil {
		o.LeaseTermYears = *e.LeaseTermYears
	}
	if e.ContiguousRequired != nil {
		o.ContiguousRequired = *e.ContiguousRequired
	}
}

// Requirements builds a fresh OpportunityRequirements from the extracted
// fields alone.
func (e *ExtractedRequirements) Requirements() *matching.OpportunityRequirements {
	o := &matching.OpportunityRequirements{}
	e.Apply(o)
	return o
}

func extractSquareFootage(text string) (min, max *float64) {
	if m := sfRangeRe.FindStringSubmatch(text); m != nil {
		lo, okLo := parseNumber(m[1])
		hi, okHi := parseNumber(m[2])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			return &lo, &hi
		}
	}
	if m := sfMinRe.FindStringSubmatch(text); m != nil {
		if lo, ok := parseNumber(m[1]); ok {
			return &lo, nil
		}
	}
	return nil, nil
}

// extractBuildingClasses reads class requirements. "Class A" admits A+
// buildings as well; "Class A+" does not admit plain A.
func extractBuildingClasses(text string) []string {
	if classAPlusRe.MatchString(text) {
		return []string{"A+"}
	}
	if classARe.MatchString(text) {
		return []string{"A+", "A"}
	}
	return nil
}

func extractClearance(text string) *string {
	if topSecretRe.MatchString(text) {
		level := "top_secret"
		return &level
	}
	if secretRe.MatchString(text) {
		level := "secret"
		return &level
	}
	return nil
}

func extractParkingRatio(text string) *float64 {
	m := parkingRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	ratio, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &ratio
}

func extractLeaseTerm(text string) *int {
	m := leaseTermRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &years
}

// flag returns true when the pattern matches and nil when it does not:
// keyword absence means unknown, not "not required".
func flag(re *regexp.Regexp, text string) *bool {
	if !re.MatchString(text) {
		return nil
	}
	t := true
	return &t
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
