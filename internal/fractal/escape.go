package fractal

import "math"

// EscapeIndex iterates z = z² + c from zero. The magnitude test runs on
// z + c before squaring, so the reported index is the step at which that
// sum first leaves the radius.
func EscapeIndex(re, im float64, maxIterations int, radius float64) (int, bool) {
	var zr, zi float64
	for i := 0; i < maxIterations; i++ {
		x := zr + re
		y := zi + im
		if math.Sqrt(x*x+y*y) > radius {
			return i, true
		}
		zr = x*x - y*y
		zi = 2 * x * y
	}
	return 0, false
}

// Intensity is the grayscale level for c: the escape index clamped to 255,
// or 0 for points that never escape.
func Intensity(re, im float64, maxIterations int, radius float64) uint8 {
	n, escaped := EscapeIndex(re, im, maxIterations, radius)
	if !escaped {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
