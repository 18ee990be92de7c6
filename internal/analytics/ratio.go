// Package analytics groups activity records by namespace and by date and
// classifies namespaces by engagement.
package analytics

import "math"

// Ratio divides num by den, returning NaN when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Round2 rounds to two decimal places, half away from zero. NaN stays NaN.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
