package analytics

import "github.com/j-veylop/namespace-activity-tui/internal/models"

// DefaultEngagementThreshold is the tx-per-user ratio above which a namespace is
// considered highly concentrated.
const DefaultEngagementThreshold = 100.0

// Classifier partitions protocols into high-concentration and healthy buckets.
type Classifier struct {
	Threshold float64
	// RoundedCompare compares the ratio after rounding it to two decimals,
	// reproducing dashboards that classify on the displayed value.
	RoundedCompare bool
}

// DefaultClassifier returns a classifier with the default threshold and direct
// numeric comparison.
func DefaultClassifier() Classifier {
	return Classifier{Threshold: DefaultEngagementThreshold}
}

// IsHighConcentration reports whether p falls into the high-concentration bucket.
// The boundary belongs to the healthy bucket. A NaN ratio never compares greater,
// so protocols without users are healthy.
func (c Classifier) IsHighConcentration(p models.ProtocolSummary) bool {
	ratio := p.TxPerUser
	if c.RoundedCompare {
		ratio = Round2(ratio)
	}
	return ratio > c.Threshold
}

// Classify counts protocols per bucket. Every protocol lands in exactly one
// bucket.
func (c Classifier) Classify(summaries []models.ProtocolSummary) models.EngagementStats {
	stats := models.EngagementStats{TotalProtocols: len(summaries)}
	for _, p := range summaries {
		if c.IsHighConcentration(p) {
			stats.HighConcentration++
		} else {
			stats.HealthyEngagement++
		}
	}
	return stats
}

// HighConcentration returns the namespaces of high-concentration protocols,
// ordered by tx-per-user descending.
func (c Classifier) HighConcentration(summaries []models.ProtocolSummary) []string {
	var names []string
	for _, p := range RankByTxPerUser(summaries) {
		if c.IsHighConcentration(p) {
			names = append(names, p.Namespace)
		}
	}
	return names
}
