package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/hbracken/fedlease/pkg/geo"
	"github.com/hbracken/fedlease/pkg/property"
	"github.com/hbracken/fedlease/pkg/rtree"
)

func main() {
	count := flag.Int("properties", 100000, "Number of properties to index")
	queries := flag.Int("queries", 1000, "Number of queries to run")
	radius := flag.Float64("radius", 5, "Radius in miles for radius queries")
	k := flag.Int("k", 10, "Neighbors per k-nearest query")
	flag.Parse()

	fmt.Printf("🔍 Fedlease R-tree Benchmark\n")
	fmt.Printf("============================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Properties: %d\n", *count)
	fmt.Printf("  Queries: %d\n", *queries)
	fmt.Printf("  Radius: %.1f miles\n", *radius)
	fmt.Printf("  K: %d\n\n", *k)

	rng := rand.New(rand.NewSource(42))
	props := syntheticProperties(rng, *count)
	queryPoints := make([][2]float64, *queries)
	for i := range queryPoints {
		p := props[rng.Intn(len(props))]
		queryPoints[i] = [2]float64{p.Latitude, p.Longitude}
	}

	// Benchmark 1: linear scan baseline
	fmt.Printf("📊 Benchmark 1: Linear Scan (no index)\n")
	start := time.Now()
	totalFound := 0
	for _, q := range queryPoints {
		for _, p := range props {
			if geo.HaversineMiles(q[0], q[1], p.Latitude, p.Longitude) <= *radius {
				totalFound++
			}
		}
	}
	scanTime := time.Since(start)
	fmt.Printf("✅ %d queries in %v\n", *queries, scanTime)
	fmt.Printf("📊 Average results: %.1f\n", float64(totalFound)/float64(*queries))
	fmt.Printf("⚡ Average: %.2fms per query\n\n", float64(scanTime.Microseconds())/float64(*queries)/1000.0)

	// Benchmark 2: incremental insert build
	fmt.Printf("📊 Benchmark 2: Index Build (incremental insert)\n")
	cfg := rtree.DefaultConfig()
	cfg.BulkLoad = false
	incremental, err := rtree.New(cfg)
	if err != nil {
		panic(err)
	}
	start = time.Now()
	for _, p := range props {
		incremental.Insert(p)
	}
	insertTime := time.Since(start)
	fmt.Printf("✅ %d inserts in %v (%.0f/sec)\n\n", *count, insertTime, float64(*count)/insertTime.Seconds())

	// Benchmark 3: bulk load build
	fmt.Printf("📊 Benchmark 3: Index Build (Hilbert bulk load)\n")
	cfg.BulkLoad = true
	bulk, err := rtree.New(cfg)
	if err != nil {
		panic(err)
	}
	start = time.Now()
	bulk.BulkLoad(props)
	bulkTime := time.Since(start)
	fmt.Printf("✅ %d properties packed in %v (%.0f/sec)\n", *count, bulkTime, float64(*count)/bulkTime.Seconds())
	fmt.Printf("🚀 Bulk load speedup vs insert: %.1fx\n\n", float64(insertTime.Nanoseconds())/float64(bulkTime.Nanoseconds()))

	// Benchmark 4: indexed radius queries
	fmt.Printf("📊 Benchmark 4: Indexed Radius Query\n")
	start = time.Now()
	totalFound = 0
	for _, q := range queryPoints {
		totalFound += len(bulk.SearchRadius(q[0], q[1], *radius))
	}
	radiusTime := time.Since(start)
	fmt.Printf("✅ %d queries in %v\n", *queries, radiusTime)
	fmt.Printf("📊 Average results: %.1f\n", float64(totalFound)/float64(*queries))
	fmt.Printf("⚡ Average: %.2fμs per query\n", float64(radiusTime.Microseconds())/float64(*queries))
	fmt.Printf("🚀 Throughput: %.0f queries/sec\n\n", float64(*queries)/radiusTime.Seconds())

	// Benchmark 5: k-nearest queries
	fmt.Printf("📊 Benchmark 5: K-Nearest Query (k=%d)\n", *k)
	start = time.Now()
	for _, q := range queryPoints {
		bulk.KNearest(q[0], q[1], *k)
	}
	knnTime := time.Since(start)
	fmt.Printf("✅ %d queries in %v\n", *queries, knnTime)
	fmt.Printf("⚡ Average: %.2fμs per query\n", float64(knnTime.Microseconds())/float64(*queries))
	fmt.Printf("🚀 Throughput: %.0f queries/sec\n\n", float64(*queries)/knnTime.Seconds())

	// Summary
	fmt.Printf("🎯 Performance Summary\n")
	fmt.Printf("======================\n")
	fmt.Printf("Linear scan:    %.2fms per query\n", float64(scanTime.Microseconds())/float64(*queries)/1000.0)
	fmt.Printf("Indexed radius: %.2fμs per query\n", float64(radiusTime.Microseconds())/float64(*queries))
	speedup := float64(scanTime.Nanoseconds()) / float64(radiusTime.Nanoseconds())
	fmt.Printf("\n🚀 Speedup: %.0fx faster with the R-tree\n", speedup)
}

// syntheticProperties spreads properties across metro clusters so radius
// queries hit realistic densities.
func syntheticProperties(rng *rand.Rand, n int) []*property.FederalProperty {
	metros := [][2]float64{
		{38.9072, -77.0369},  // Washington
		{40.7128, -74.0060},  // New York
		{41.8781, -87.6298},  // Chicago
		{39.7392, -104.9903}, // Denver
		{33.7490, -84.3880},  // Atlanta
		{34.0522, -118.2437}, // Los Angeles
	}
	props := make([]*property.FederalProperty, n)
	for i := range props {
		m := metros[rng.Intn(len(metros))]
		props[i] = &property.FederalProperty{
			ID:        fmt.Sprintf("bench-%06d", i),
			Latitude:  m[0] + (rng.Float64()-0.5)*0.5,
			Longitude: m[1] + (rng.Float64()-0.5)*0.5,
			RSF:       10000 + rng.Float64()*190000,
			Ownership: property.OwnershipLeased,
		}
	}
	return props
}
