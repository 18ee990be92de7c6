package analytics

import (
	"slices"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// DateLabelLayout formats DailySummary labels.
const DateLabelLayout = "Jan 2, 2006"

// AggregateDaily builds one DailySummary per calendar date, sorted by date
// ascending. Records without a date are not grouped; the second return value
// counts them.
func AggregateDaily(records []models.RawRecord) ([]models.DailySummary, int) {
	var order []time.Time
	groups := make(map[time.Time][]models.RawRecord)
	undated := 0

	for _, r := range records {
		if !r.HasDate() {
			undated++
			continue
		}
		day := calendarDay(r.Date)
		if _, ok := groups[day]; !ok {
			order = append(order, day)
		}
		groups[day] = append(groups[day], r)
	}

	days := make([]models.DailySummary, 0, len(order))
	for _, d := range order {
		days = append(days, summarizeDay(d, groups[d]))
	}

	slices.SortStableFunc(days, func(a, b models.DailySummary) int {
		return a.Date.Compare(b.Date)
	})
	return days, undated
}

func summarizeDay(date time.Time, records []models.RawRecord) models.DailySummary {
	d := models.DailySummary{
		Date:           date,
		Label:          date.Format(DateLabelLayout),
		ProtocolsCount: len(records),
	}
	for _, r := range records {
		d.TotalTxs = r.DailyIncomingTxs.AddTo(d.TotalTxs)
		d.TotalUsers = r.DailyActiveUsers.AddTo(d.TotalUsers)
	}
	d.AvgTxPerUser = Ratio(float64(d.TotalTxs), float64(d.TotalUsers))
	return d
}

// calendarDay truncates t to midnight UTC of its own calendar date.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
