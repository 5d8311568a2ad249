package systems

import "math"

// Node-graph style helpers. All are pure and operate on float64 so that a
// value computed once per instance is reused bit-identically downstream.

// Clamp clamps v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Remap linearly maps v from [inLow, inHigh] to [outLow, outHigh] without clamping.
// A degenerate input interval maps everything to outLow.
func Remap(v, inLow, inHigh, outLow, outHigh float64) float64 {
	span := inHigh - inLow
	if span == 0 {
		return outLow
	}
	t := (v - inLow) / span
	return outLow + t*(outHigh-outLow)
}

// RemapClamp is Remap with the normalized position clamped to [0, 1] first,
// so the result never leaves [outLow, outHigh].
func RemapClamp(v, inLow, inHigh, outLow, outHigh float64) float64 {
	span := inHigh - inLow
	if span == 0 {
		return outLow
	}
	t := Clamp01((v - inLow) / span)
	return outLow + t*(outHigh-outLow)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Step returns 1 when v is strictly greater than edge, else 0.
func Step(edge, v float64) float64 {
	if v > edge {
		return 1
	}
	return 0
}

// Mod is the floored modulo (x - y*floor(x/y)); the result has the sign of y.
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// Sanitize replaces NaN and infinities with 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
