package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// Required column names of the activity table.
const (
	ColumnNamespace        = "namespace"
	ColumnDate             = "date"
	ColumnDailyIncomingTxs = "daily_incoming_txs"
	ColumnDailyActiveUsers = "daily_active_users"
)

// RequiredColumns lists the columns every activity table must carry.
var RequiredColumns = []string{
	ColumnNamespace,
	ColumnDate,
	ColumnDailyIncomingTxs,
	ColumnDailyActiveUsers,
}

// dateLayouts are tried in order when reading the date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// RecordSet is the typed output of Records.
type RecordSet struct {
	Records []models.RawRecord
	// CoercedFields counts count/date fields that were present but unusable
	// and therefore recorded as missing.
	CoercedFields int
}

// Records builds typed activity records from a parsed table.
//
// Coercion rules:
//   - namespace is the trimmed raw text, even when it looks numeric.
//   - date must match one of the supported layouts; the calendar date as written
//     is kept at UTC midnight. Anything else leaves the date missing.
//   - counts must be finite, integral and non-negative numbers. Anything else,
//     including absent trailing fields, leaves the count missing.
//
// Rows are never dropped for bad fields. A table without a header (empty input)
// yields no records and no error; a header lacking a required column is an error.
func Records(t *Table) (*RecordSet, error) {
	set := &RecordSet{}
	if t == nil || t.Header == nil {
		return set, nil
	}

	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		i := t.Column(name)
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	set.Records = make([]models.RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := models.RawRecord{
			Namespace: row[idx[ColumnNamespace]].Text(),
		}

		dateCell := row[idx[ColumnDate]]
		rec.DateRaw = dateCell.Text()
		if d, ok := ParseDate(rec.DateRaw); ok {
			rec.Date, rec.Dated = d, true
		} else if !dateCell.IsBlank() {
			set.CoercedFields++
		}

		var coerced bool
		rec.DailyIncomingTxs, coerced = countField(row[idx[ColumnDailyIncomingTxs]])
		if coerced {
			set.CoercedFields++
		}
		rec.DailyActiveUsers, coerced = countField(row[idx[ColumnDailyActiveUsers]])
		if coerced {
			set.CoercedFields++
		}

		set.Records = append(set.Records, rec)
	}

	return set, nil
}

// countField converts a cell to a Count. coerced is true when the cell had
// content that could not be used.
func countField(c Cell) (count models.Count, coerced bool) {
	if v, ok := c.Count(); ok {
		return models.NewCount(v), false
	}
	return models.Count{}, !c.IsBlank()
}

// ParseDate parses a calendar date in any supported layout and returns it at UTC
// midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
