package models

import "time"

// ProtocolSummary aggregates every record of one namespace.
// TxPerUser and TxConcentration are NaN when TotalUsers is zero.
type ProtocolSummary struct {
	Namespace       string
	TotalTxs        int64
	TotalUsers      int64
	DaysActive      int
	AvgDailyUsers   float64
	TxPerUser       float64
	TxConcentration float64
}

// DailySummary aggregates every record sharing one calendar date.
type DailySummary struct {
	Date           time.Time // sort key
	Label          string    // display only
	TotalTxs       int64
	TotalUsers     int64
	AvgTxPerUser   float64 // NaN when TotalUsers is zero
	ProtocolsCount int     // records on this date, not distinct namespaces
}

// EngagementStats partitions protocols by their tx-per-user ratio.
type EngagementStats struct {
	TotalProtocols    int
	HighConcentration int
	HealthyEngagement int
}

// HighConcentrationShare returns the high-concentration fraction in [0, 1].
func (e EngagementStats) HighConcentrationShare() float64 {
	if e.TotalProtocols == 0 {
		return 0
	}
	return float64(e.HighConcentration) / float64(e.TotalProtocols)
}

// Report is the complete result of one load, handed to the presentation layer.
type Report struct {
	Source     string
	Protocols  []ProtocolSummary
	Daily      []DailySummary
	Engagement EngagementStats

	// HighConcentrationNamespaces lists classified high-concentration entities in
	// ranking order.
	HighConcentrationNamespaces []string

	RecordCount    int
	SkippedRows    int
	CoercedFields  int
	UndatedRecords int
}

// IsEmpty returns true if the report was computed from a table without records.
func (r *Report) IsEmpty() bool {
	return r == nil || r.RecordCount == 0
}

// TotalTxs returns the sum of transactions across all protocols, saturating
// at math.MaxInt64.
func (r *Report) TotalTxs() int64 {
	if r == nil {
		return 0
	}
	var total int64
	for _, p := range r.Protocols {
		total = SaturatingAdd(total, p.TotalTxs)
	}
	return total
}

// TotalUsers returns the sum of active users across all protocols.
func (r *Report) TotalUsers() int64 {
	if r == nil {
		return 0
	}
	var total int64
	for _, p := range r.Protocols {
		total = SaturatingAdd(total, p.TotalUsers)
	}
	return total
}
