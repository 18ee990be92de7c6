package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/logger"
)

// ErrInvalidTable is returned when a table name is not a plain identifier.
var ErrInvalidTable = errors.New("invalid table name")

// ExportActivity writes the activity columns of table to w as CSV text with a
// header row, in rowid order. It returns the number of data rows written.
func (db *DB) ExportActivity(ctx context.Context, table string, w io.Writer) (int, error) {
	if !tableNamePattern.MatchString(table) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	query := fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid`,
		strings.Join(activityColumns, ", "), table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "table", table, "error", err)
		}
	}()

	cw := csv.NewWriter(w)
	if err := cw.Write(activityColumns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	values := make([]any, len(activityColumns))
	ptrs := make([]any, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	record := make([]string, len(values))

	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return n, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return n, fmt.Errorf("failed to write row: %w", err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, fmt.Errorf("failed to read rows: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("failed to flush: %w", err)
	}
	return n, nil
}

// formatValue renders a scanned column value as the text a CSV export of the
// same table would carry. NULL becomes an empty field.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
