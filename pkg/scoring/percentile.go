package scoring

// Percentile blends bucketed sub-percentiles for property count (40%),
// total RSF (40%), and expiring-lease count (20%). Each sub-percentile is
// the metric's bucket index among a fixed threshold array, mapped to an
// even split of 0-100.
var (
	percentilePropertyThresholds = []float64{10, 25, 50, 75, 100, 150, 200}
	percentileRSFThresholds      = []float64{100_000, 250_000, 500_000, 1_000_000, 2_000_000, 5_000_000, 10_000_000}
	percentileExpiringThresholds = []float64{1, 3, 5, 10, 15, 20, 30}
)

// computePercentile returns the 0-100 blended percentile for the metrics.
func computePercentile(m NeighborhoodMetrics) float64 {
	propPct := bucketPercentile(float64(m.TotalProperties), percentilePropertyThresholds)
	rsfPct := bucketPercentile(m.TotalRSF, percentileRSFThresholds)
	expiringPct := bucketPercentile(float64(m.ExpiringLeases24Mo), percentileExpiringThresholds)

	return round1(0.4*propPct + 0.4*rsfPct + 0.2*expiringPct)
}

// bucketPercentile locates value among thresholds and maps its bucket index
// to an even percentile split: below the first threshold is 0, at or above
// the last is 100.
func bucketPercentile(value float64, thresholds []float64) float64 {
	bucket := 0
	for _, threshold := range thresholds {
		if value >= threshold {
			bucket++
		}
	}
	return float64(bucket) / float64(len(thresholds)) * 100
}
