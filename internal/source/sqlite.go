package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/j-veylop/namespace-activity-tui/internal/db"
	"github.com/j-veylop/namespace-activity-tui/internal/logger"
)

// SQLiteSource exports a table from a SQLite database as CSV text, so it goes
// through the same parser as file and HTTP sources.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource returns a source reading table from the database at path.
func NewSQLiteSource(path, table string) *SQLiteSource {
	if table == "" {
		table = db.DefaultTable
	}
	return &SQLiteSource{path: path, table: table}
}

// Fetch implements Source. The database is opened per fetch so that a file
// replaced on disk is picked up by the next load.
func (s *SQLiteSource) Fetch(ctx context.Context) ([]byte, error) {
	conn, err := db.Open(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("failed to close database", "path", s.path, "error", err)
		}
	}()

	var buf bytes.Buffer
	n, err := conn.ExportActivity(ctx, s.table, &buf)
	if err != nil {
		return nil, err
	}
	logger.Debug("exported sqlite table", "path", s.path, "table", s.table, "rows", n)
	return buf.Bytes(), nil
}

// Describe implements Source.
func (s *SQLiteSource) Describe() string {
	return fmt.Sprintf("sqlite://%s?table=%s", s.path, s.table)
}

// WatchPath implements Source.
func (s *SQLiteSource) WatchPath() string {
	return s.path
}
