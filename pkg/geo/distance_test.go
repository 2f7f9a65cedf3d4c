package geo

import (
	"math"
	"testing"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantMiles float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 38.9072, lng1: -77.0369,
			lat2: 38.9072, lng2: -77.0369,
			wantMiles: 0,
			tolerance: 0.0001,
		},
		{
			name: "washington dc to new york",
			lat1: 38.9072, lng1: -77.0369,
			lat2: 40.7128, lng2: -74.0060,
			wantMiles: 203.9,
			tolerance: 2.0,
		},
		{
			name: "washington dc to los angeles",
			lat1: 38.9072, lng1: -77.0369,
			lat2: 34.0522, lng2: -118.2437,
			wantMiles: 2295,
			tolerance: 15.0,
		},
		{
			name: "one degree of latitude",
			lat1: 38.0, lng1: -77.0,
			lat2: 39.0, lng2: -77.0,
			wantMiles: 69.09,
			tolerance: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMiles(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("HaversineMiles() = %.2f, want %.2f +/- %.2f", got, tt.wantMiles, tt.tolerance)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := HaversineMiles(38.9072, -77.0369, 40.7128, -74.0060)
	d2 := HaversineMiles(40.7128, -74.0060, 38.9072, -77.0369)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %.9f vs %.9f", d1, d2)
	}
}
