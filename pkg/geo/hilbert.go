package geo

// hilbertOrder is the curve order; coordinates are quantized onto a
// 2^16 x 2^16 grid before mapping.
const hilbertOrder = 16

// hilbertGridMax is the largest cell coordinate on either axis.
const hilbertGridMax = (1 << hilbertOrder) - 1

// HilbertIndex maps a (lat, lng) pair onto a single scalar along a
// Hilbert space-filling curve. Points close on the curve are close in
// space, which is what makes a single sort good enough for bottom-up
// R-Tree packing.
func HilbertIndex(lat, lng float64) uint64 {
	x := quantize(lng, -180, 180)
	y := quantize(lat, -90, 90)
	return hilbertD(x, y)
}

// quantize maps v in [min, max] to an integer cell in [0, hilbertGridMax].
// Out-of-range values are clamped rather than rejected; the curve only
// needs a consistent ordering, not validation.
func quantize(v, min, max float64) uint32 {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	scaled := (v - min) / (max - min) * float64(hilbertGridMax)
	return uint32(scaled)
}

// hilbertD converts grid cell (x, y) to its distance along the curve.
func hilbertD(x, y uint32) uint64 {
	var d uint64
	for s := uint32(1 << (hilbertOrder - 1)); s > 0; s >>= 1 {
		var rx, ry uint32
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		d += uint64(s) * uint64(s) * uint64((3*rx)^ry)
		x, y = hilbertRotate(s, x, y, rx, ry)
	}
	return d
}

// hilbertRotate reorients the quadrant so the curve stays contiguous.
func hilbertRotate(s, x, y, rx, ry uint32) (uint32, uint32) {
	if ry == 0 {
		if rx == 1 {
			x = s - 1 - x
			y = s - 1 - y
		}
		x, y = y, x
	}
	return x, y
}
