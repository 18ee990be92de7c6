package components

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Undefined is shown in place of ratios that have no users to divide by.
const Undefined = "—"

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatRatio renders v with two decimals, or Undefined for NaN.
func FormatRatio(v float64) string {
	if math.IsNaN(v) {
		return Undefined
	}
	if math.IsInf(v, 0) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPercent renders a share in [0, 1] as a percentage with one decimal.
func FormatPercent(share float64) string {
	if math.IsNaN(share) {
		return Undefined
	}
	return strconv.FormatFloat(share*100, 'f', 1, 64) + "%"
}
