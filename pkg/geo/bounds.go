package geo

import "math"

// BoundingBox is an axis-aligned lat/lng rectangle.
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// PointBounds returns the degenerate bounding box of a single point
// (min == max on both axes).
func PointBounds(lat, lng float64) BoundingBox {
	return BoundingBox{MinLat: lat, MinLng: lng, MaxLat: lat, MaxLng: lng}
}

// CircleBounds returns a bounding box guaranteed to contain the circle of
// radiusMiles around (lat, lng). The longitude delta is widened by the
// cos(lat) correction so the box never undershoots the circle at higher
// latitudes.
func CircleBounds(lat, lng, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / milesPerDegreeLat

	// Longitude degrees shrink toward the poles, and a circle's longitude
	// extent peaks poleward of its center, so take the cosine at the
	// circle's poleward edge. Clamp so the delta stays finite near +/-90.
	polewardLat := math.Max(math.Abs(lat-latDelta), math.Abs(lat+latDelta))
	if polewardLat > 89 {
		polewardLat = 89
	}
	cosLat := math.Cos(toRadians(polewardLat))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusMiles / (milesPerDegreeLngEquator * cosLat)

	return BoundingBox{
		MinLat: lat - latDelta,
		MinLng: lng - lngDelta,
		MaxLat: lat + latDelta,
		MaxLng: lng + lngDelta,
	}
}

// Union returns the smallest bounding box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		MinLat: math.Min(b.MinLat, other.MinLat),
		MinLng: math.Min(b.MinLng, other.MinLng),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
		MaxLng: math.Max(b.MaxLng, other.MaxLng),
	}
}

// Intersects reports whether the two boxes share any area or edge.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat &&
		b.MinLng <= other.MaxLng && b.MaxLng >= other.MinLng
}

// Contains reports whether the point lies inside or on the box boundary.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// ContainsBox reports whether other lies entirely within b.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return other.MinLat >= b.MinLat && other.MaxLat <= b.MaxLat &&
		other.MinLng >= b.MinLng && other.MaxLng <= b.MaxLng
}

// Area returns the box area in squared degrees.
func (b BoundingBox) Area() float64 {
	return (b.MaxLat - b.MinLat) * (b.MaxLng - b.MinLng)
}

// OverlapArea returns the area of the intersection of the two boxes, or 0
// when they do not overlap.
func (b BoundingBox) OverlapArea(other BoundingBox) float64 {
	latOverlap := math.Min(b.MaxLat, other.MaxLat) - math.Max(b.MinLat, other.MinLat)
	lngOverlap := math.Min(b.MaxLng, other.MaxLng) - math.Max(b.MinLng, other.MinLng)
	if latOverlap <= 0 || lngOverlap <= 0 {
		return 0
	}
	return latOverlap * lngOverlap
}

// EnlargementCost returns how much b's area would grow to also cover other.
// Used for R-Tree subtree selection.
func (b BoundingBox) EnlargementCost(other BoundingBox) float64 {
	return b.Union(other).Area() - b.Area()
}

// Center returns the box midpoint.
func (b BoundingBox) Center() (lat, lng float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}

// MinDistanceMiles returns the great-circle distance from the point to
// the nearest point of the box, or 0 when the point is inside. Used as
// the admissible lower bound for nearest-neighbor pruning; it must never
// exceed the true distance to any contained point.
//
// The minimum over the boundary is attained either on the query's own
// meridian (when its longitude falls in the box span) or on one of the
// two meridian edges. On a long edge the closest point can sit poleward
// of the naive latitude clamp, so each edge is minimized by solving for
// the perpendicular foot rather than clamping in lat/lng space. Checking
// both edges also keeps the bound sound across the antimeridian, where
// the numerically nearer longitude is not the spherically nearer one.
func (b BoundingBox) MinDistanceMiles(lat, lng float64) float64 {
	nearestLat := clamp(lat, b.MinLat, b.MaxLat)
	if lng >= b.MinLng && lng <= b.MaxLng {
		// Inside, or due north/south: the closest point sits on the
		// facing parallel along the query's own meridian.
		return HaversineMiles(lat, lng, nearestLat, lng)
	}

	d := b.meridianEdgeDistance(lat, lng, b.MinLng)
	if e := b.meridianEdgeDistance(lat, lng, b.MaxLng); e < d {
		d = e
	}
	return d
}

// meridianEdgeDistance returns the minimum distance from the point to the
// box's meridian edge at edgeLng. The edge minimum is at the great-circle
// perpendicular foot when it lands between the box latitudes, else at a
// corner.
func (b BoundingBox) meridianEdgeDistance(lat, lng, edgeLng float64) float64 {
	latR := toRadians(lat)
	dLngR := toRadians(lng - edgeLng)
	foot := toDegrees(math.Atan2(math.Sin(latR), math.Cos(latR)*math.Cos(dLngR)))

	d := HaversineMiles(lat, lng, clamp(foot, b.MinLat, b.MaxLat), edgeLng)
	if c := HaversineMiles(lat, lng, b.MinLat, edgeLng); c < d {
		d = c
	}
	if c := HaversineMiles(lat, lng, b.MaxLat, edgeLng); c < d {
		d = c
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
