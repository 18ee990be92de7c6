// Package models defines data structures and domain types.
package models

import (
	"math"
	"time"
)

// Count is a non-negative integer field that may be absent in the source table.
type Count struct {
	Value int64
	Valid bool
}

// NewCount returns a present count.
func NewCount(v int64) Count {
	return Count{Value: v, Valid: true}
}

// OrZero returns the value, or zero when the count is missing.
func (c Count) OrZero() int64 {
	if !c.Valid {
		return 0
	}
	return c.Value
}

// AddTo returns total plus the count, saturating at math.MaxInt64. A missing
// count adds nothing.
func (c Count) AddTo(total int64) int64 {
	return SaturatingAdd(total, c.OrZero())
}

// SaturatingAdd adds two non-negative values, clamping the sum to
// math.MaxInt64 instead of wrapping.
func SaturatingAdd(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

// RawRecord is one row of the per-day, per-namespace activity table.
type RawRecord struct {
	Namespace        string
	Date             time.Time // UTC midnight; meaningful only when Dated
	Dated            bool
	DateRaw          string
	DailyIncomingTxs Count
	DailyActiveUsers Count
}

// HasDate reports whether the record carries a usable calendar date.
func (r RawRecord) HasDate() bool {
	return r.Dated
}
