package extraction

import (
	"testing"
)

const sampleSolicitation = `The Government seeks to lease 40,000 to 55,000 RSF of
Class A office space in Arlington, VA. Space must be contiguous and located on a
single floor. The building must be ADA compliant and SCIF capable; personnel
hold Top Secret clearance. Fiber connectivity and backup power are required.
Parking: 3.5 spaces per 1,000 RSF. The Government intends a 15-year lease with a
10-year firm term.`

func TestExtractFullSolicitation(t *testing.T) {
	e := Extract(sampleSolicitation)

	if e.MinSquareFeet == nil || *e.MinSquareFeet != 40000 {
		t.Errorf("min SF = %v, want 40000", deref(e.MinSquareFeet))
	}
	if e.MaxSquareFeet == nil || *e.MaxSquareFeet != 55000 {
		t.Errorf("max SF = %v, want 55000", deref(e.MaxSquareFeet))
	}
	if len(e.BuildingClasses) != 2 || e.BuildingClasses[0] != "A+" || e.BuildingClasses[1] != "A" {
		t.Errorf("building classes = %v, want [A+ A]", e.BuildingClasses)
	}
	if e.ADARequired == nil || !*e.ADARequired {
		t.Error("expected ADA requirement")
	}
	if e.SCIFRequired == nil || !*e.SCIFRequired {
		t.Error("expected SCIF requirement")
	}
	if e.ClearanceRequired == nil || *e.ClearanceRequired != "top_secret" {
		t.Errorf("clearance = %v, want top_secret", derefStr(e.ClearanceRequired))
	}
	if e.FiberRequired == nil || !*e.FiberRequired {
		t.Error("expected fiber requirement")
	}
	if e.BackupPowerRequired == nil || !*e.BackupPowerRequired {
		t.Error("expected backup power requirement")
	}
	if e.ParkingRatioPer1000SF == nil || *e.ParkingRatioPer1000SF != 3.5 {
		t.Errorf("parking ratio = %v, want 3.5", deref(e.ParkingRatioPer1000SF))
	}
	if e.LeaseTermYears == nil || *e.LeaseTermYears != 15 {
		t.Errorf("lease term = %v, want 15", e.LeaseTermYears)
	}
	if e.ContiguousRequired == nil || !*e.ContiguousRequired {
		t.Error("expected contiguity requirement")
	}
}

func TestExtractSquareFootage(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64 // 0 means absent
	}{
		{"range with to", "seeking 20,000 to 30,000 SF", 20000, 30000},
		{"range with dash", "seeking 20,000-30,000 square feet", 20000, 30000},
		{"reversed range normalized", "seeking 30,000 to 20,000 SF", 20000, 30000},
		{"range with ABOA qualifier", "40,000 to 55,000 ABOA SF of office space", 40000, 55000},
		{"minimum fallback", "a minimum of 12,500 RSF is required", 12500, 0},
		{"minimum with ABOA qualifier", "at least 15,000 ABOA SF", 15000, 0},
		{"at least fallback", "at least 8,000 SF of office space", 8000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := extractSquareFootage(tt.text)
			if min == nil || *min != tt.min {
				t.Errorf("min = %v, want %v", deref(min), tt.min)
			}
			if tt.max == 0 {
				if max != nil {
					t.Errorf("max = %v, want absent", *max)
				}
			} else if max == nil || *max != tt.max {
				t.Errorf("max = %v, want %v", deref(max), tt.max)
			}
		})
	}

	t.Run("no footage mentioned", func(t *testing.T) {
		min, max := extractSquareFootage("office space in downtown Denver")
		if min != nil || max != nil {
			t.Errorf("got %v/%v, want absent", deref(min), deref(max))
		}
	})
}

func TestExtractBuildingClasses(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Class A+ building required", []string{"A+"}},
		{"Class A office space", []string{"A+", "A"}},
		{"class a space", []string{"A+", "A"}},
		{"warehouse space", nil},
	}
	for _, tt := range tests {
		got := extractBuildingClasses(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.text, got, tt.want)
			}
		}
	}
}

func TestExtractClearance(t *testing.T) {
	tests := []struct {
		text string
		want string // "" means absent
	}{
		{"personnel hold Top Secret clearance", "top_secret"},
		{"TS/SCI eligibility required", "top_secret"},
		{"Secret clearance required for access", "secret"},
		{"public-facing office space", ""},
	}
	for _, tt := range tests {
		got := extractClearance(tt.text)
		if tt.want == "" {
			if got != nil {
				t.Errorf("%q: got %v, want absent", tt.text, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.text, derefStr(got), tt.want)
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		e := Extract(text)
		if e.MinSquareFeet != nil || e.ADARequired != nil || e.ClearanceRequired != nil ||
			e.ContiguousRequired != nil || len(e.BuildingClasses) != 0 {
			t.Errorf("Extract(%q) produced non-empty record %+v", text, e)
		}
	}
}

func TestExtractAbsentKeywordsStayUnknown(t *testing.T) {
	e := Extract("seeking 10,000 SF of office space in Denver at a minimum of 10,000 SF")
	if e.ADARequired != nil {
		t.Error("ADA should be unknown, not false")
	}
	if e.SCIFRequired != nil {
		t.Error("SCIF should be unknown, not false")
	}
	if e.FiberRequired != nil {
		t.Error("fiber should be unknown, not false")
	}
	if e.BackupPowerRequired != nil {
		t.Error("backup power should be unknown, not false")
	}
}

func TestApplyLeavesUnmentionedFieldsAlone(t *testing.T) {
	e := Extract("seeking a minimum of 25,000 RSF, contiguous space")

	o := e.Requirements()
	if o.MinSquareFeet != 25000 {
		t.Errorf("min SF = %v, want 25000", o.MinSquareFeet)
	}
	if !o.ContiguousRequired {
		t.Error("expected contiguity requirement")
	}
	if o.ADARequired {
		t.Error("ADA must stay false when the text never mentions it")
	}

	// A preset field the text never mentions must survive Apply.
	o.State = "VA"
	o.ADARequired = true
	e.Apply(o)
	if o.State != "VA" || !o.ADARequired {
		t.Error("Apply overwrote fields the extraction never set")
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return -1
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
