package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// groupByNamespace maps each namespace to its records, keeping first-seen order.
func groupByNamespace(records []models.RawRecord) (order []string, groups map[string][]models.RawRecord) {
	groups = make(map[string][]models.RawRecord)
	for _, r := range records {
		if _, ok := groups[r.Namespace]; !ok {
			order = append(order, r.Namespace)
		}
		groups[r.Namespace] = append(groups[r.Namespace], r)
	}
	return order, groups
}

// AggregateProtocols builds one ProtocolSummary per namespace, sorted by total
// transactions descending. Ties keep first-seen order.
func AggregateProtocols(records []models.RawRecord) []models.ProtocolSummary {
	order, groups := groupByNamespace(records)

	summaries := make([]models.ProtocolSummary, 0, len(order))
	for _, ns := range order {
		summaries = append(summaries, summarizeProtocol(ns, groups[ns]))
	}

	slices.SortStableFunc(summaries, func(a, b models.ProtocolSummary) int {
		return cmp.Compare(b.TotalTxs, a.TotalTxs)
	})
	return summaries
}

func summarizeProtocol(ns string, records []models.RawRecord) models.ProtocolSummary {
	s := models.ProtocolSummary{
		Namespace:  ns,
		DaysActive: len(records),
	}
	for _, r := range records {
		s.TotalTxs = r.DailyIncomingTxs.AddTo(s.TotalTxs)
		s.TotalUsers = r.DailyActiveUsers.AddTo(s.TotalUsers)
	}

	txs := float64(s.TotalTxs)
	users := float64(s.TotalUsers)
	days := float64(s.DaysActive)

	s.AvgDailyUsers = Ratio(users, days)
	s.TxPerUser = Ratio(txs, users)
	s.TxConcentration = Ratio(txs, users*days)
	return s
}

// RankByTxPerUser returns a copy of summaries ordered by tx-per-user descending.
// Entities without users (NaN ratio) go last; ties keep input order.
func RankByTxPerUser(summaries []models.ProtocolSummary) []models.ProtocolSummary {
	ranked := slices.Clone(summaries)
	slices.SortStableFunc(ranked, func(a, b models.ProtocolSummary) int {
		aNaN, bNaN := math.IsNaN(a.TxPerUser), math.IsNaN(b.TxPerUser)
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		}
		return cmp.Compare(b.TxPerUser, a.TxPerUser)
	})
	return ranked
}
