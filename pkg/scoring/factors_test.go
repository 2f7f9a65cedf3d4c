package scoring

import (
	"math"
	"testing"
)

func metricsWith(mutate func(*NeighborhoodMetrics)) NeighborhoodMetrics {
	m := NeighborhoodMetrics{
		TotalProperties: 100,
		LeasedCount:     50,
		OwnedCount:      50,
		TotalRSF:        1_000_000,
		RadiusMiles:     5,
		AreaSqMiles:     math.Pi * 25,
	}
	mutate(&m)
	return m
}

func TestDensityFactorThresholds(t *testing.T) {
	tests := []struct {
		perSqMi float64
		want    float64
	}{
		{25, 100}, {20, 100}, {15, 90}, {10, 80}, {7, 70},
		{5, 60}, {3, 50}, {2, 40}, {1, 30}, {0.5, 15}, {0, 0},
	}
	for _, tt := range tests {
		m := NeighborhoodMetrics{
			TotalProperties: int(tt.perSqMi * 10),
			RadiusMiles:     1,
			AreaSqMiles:     10, // simple divisor, not pi*r^2, fine for unit test
		}
		got := densityFactor(m)
		if math.Abs(got.Score-tt.want) > 0.001 {
			t.Errorf("density %.1f/sq-mi: score = %.2f, want %.2f", tt.perSqMi, got.Score, tt.want)
		}
	}
}

func TestLeaseActivityBands(t *testing.T) {
	tests := []struct {
		leased int
		total  int
		want   float64
	}{
		{50, 100, 100}, // optimum
		{40, 100, 100}, // band edge
		{60, 100, 100}, // band edge
		{35, 100, 80},  // first ring
		{65, 100, 80},
		{25, 100, 60},
		{75, 100, 60},
		{15, 100, 40},
		{85, 100, 40},
		{5, 100, 20},
		{95, 100, 20},
		{0, 100, 20},
		{100, 100, 20},
	}
	for _, tt := range tests {
		m := metricsWith(func(m *NeighborhoodMetrics) {
			m.TotalProperties = tt.total
			m.LeasedCount = tt.leased
			m.OwnedCount = tt.total - tt.leased
		})
		got := leaseActivityFactor(m)
		if got.Score != tt.want {
			t.Errorf("leased %d/%d: score = %.0f, want %.0f", tt.leased, tt.total, got.Score, tt.want)
		}
	}
}

func TestLeaseActivityNoProperties(t *testing.T) {
	m := metricsWith(func(m *NeighborhoodMetrics) {
		m.TotalProperties = 0
		m.LeasedCount = 0
		m.OwnedCount = 0
	})
	got := leaseActivityFactor(m)
	if got.Score != 0 || got.Explanation == "" {
		t.Errorf("expected zero score with explanation, got %.0f %q", got.Score, got.Explanation)
	}
}

func TestExpiringLeasesThresholds(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{40, 100}, {30, 100}, {20, 90}, {15, 80}, {12, 70}, {10, 70},
		{5, 60}, {3, 50}, {1, 40}, {0, 0},
	}
	for _, tt := range tests {
		m := metricsWith(func(m *NeighborhoodMetrics) { m.ExpiringLeases24Mo = tt.count })
		got := expiringLeasesFactor(m)
		if got.Score != tt.want {
			t.Errorf("%d expiring: score = %.0f, want %.0f", tt.count, got.Score, tt.want)
		}
	}
}

func TestDemandThresholds(t *testing.T) {
	tests := []struct {
		rsf  float64
		want float64
	}{
		{12_000_000, 100}, {10_000_000, 100}, {5_000_000, 90}, {2_000_000, 80},
		{1_000_000, 70}, {500_000, 60}, {250_000, 50}, {100_000, 40},
		{50_000, 20}, {0, 0},
	}
	for _, tt := range tests {
		m := metricsWith(func(m *NeighborhoodMetrics) { m.TotalRSF = tt.rsf })
		got := demandFactor(m)
		if math.Abs(got.Score-tt.want) > 0.001 {
			t.Errorf("%.0f RSF: score = %.2f, want %.2f", tt.rsf, got.Score, tt.want)
		}
	}
}

func TestVacancyThresholds(t *testing.T) {
	tests := []struct {
		vacantPct float64
		want      float64
	}{
		{0, 100}, {5, 100}, {8, 90}, {10, 90}, {15, 80}, {20, 70},
		{25, 60}, {30, 50}, {40, 20}, {50, 0}, {60, 0},
	}
	for _, tt := range tests {
		m := metricsWith(func(m *NeighborhoodMetrics) {
			m.TotalRSF = 1_000_000
			m.VacantRSF = 1_000_000 * tt.vacantPct / 100
		})
		got := vacancyFactor(m)
		if math.Abs(got.Score-tt.want) > 0.001 {
			t.Errorf("%.0f%% vacant: score = %.2f, want %.2f", tt.vacantPct, got.Score, tt.want)
		}
	}
}

func TestVacancyZeroRSF(t *testing.T) {
	m := metricsWith(func(m *NeighborhoodMetrics) { m.TotalRSF = 0 })
	got := vacancyFactor(m)
	if got.Score != 0 {
		t.Errorf("zero RSF vacancy score = %.1f, want 0", got.Score)
	}
}

func TestGrowthThresholds(t *testing.T) {
	tests := []struct {
		recentPct float64
		want      float64
	}{
		{25, 100}, {20, 100}, {15, 90}, {10, 80}, {12, 80}, {7, 70},
		{5, 60}, {3, 50}, {1.5, 25}, {0, 0},
	}
	for _, tt := range tests {
		m := metricsWith(func(m *NeighborhoodMetrics) {
			m.TotalProperties = 200
			m.BuiltLast5Years = int(tt.recentPct * 2)
		})
		got := growthFactor(m)
		if math.Abs(got.Score-tt.want) > 0.001 {
			t.Errorf("%.1f%% recent: score = %.2f, want %.2f", tt.recentPct, got.Score, tt.want)
		}
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {95, "A+"}, {94.9, "A"}, {92, "A"}, {90, "A"},
		{87, "B+"}, {85, "B+"}, {82, "B"}, {80, "B"}, {77, "C+"},
		{75, "C+"}, {72, "C"}, {70, "C"}, {65, "D"}, {60, "D"},
		{59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeForScore(tt.score); got != tt.want {
			t.Errorf("GradeForScore(%.1f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBucketPercentile(t *testing.T) {
	thresholds := []float64{10, 25, 50, 75, 100, 150, 200}
	tests := []struct {
		value float64
		want  float64
	}{
		{5, 0},
		{10, 100.0 / 7},
		{30, 200.0 / 7},
		{200, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if got := bucketPercentile(tt.value, thresholds); math.Abs(got-tt.want) > 0.001 {
			t.Errorf("bucketPercentile(%.0f) = %.3f, want %.3f", tt.value, got, tt.want)
		}
	}
}

func TestComputePercentileBlend(t *testing.T) {
	m := NeighborhoodMetrics{
		TotalProperties:    50,        // 3 thresholds met -> 42.857
		TotalRSF:           6_000_000, // 6 thresholds met -> 85.714
		ExpiringLeases24Mo: 12,        // 4 thresholds met -> 57.143
	}
	want := 0.4*(300.0/7) + 0.4*(600.0/7) + 0.2*(400.0/7)
	got := computePercentile(m)
	if math.Abs(got-round1(want)) > 0.001 {
		t.Errorf("computePercentile = %.2f, want %.2f", got, round1(want))
	}
}
