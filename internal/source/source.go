// Package source retrieves raw activity tables from files, HTTP endpoints and
// SQLite databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/db"
)

// ErrUnsupported is returned by New for locations with an unknown scheme.
var ErrUnsupported = errors.New("unsupported data source")

// Source fetches the raw bytes of one activity table.
type Source interface {
	// Fetch returns the complete table content.
	Fetch(ctx context.Context) ([]byte, error)
	// Describe returns a short human-readable location.
	Describe() string
	// WatchPath returns the local file backing the source, or "" when the
	// source cannot be watched.
	WatchPath() string
}

// New selects a Source implementation for location:
//
//	http://… and https://…      HTTPSource
//	sqlite://path?table=name    SQLiteSource
//	file://path or a bare path  FileSource
//
// timeout bounds HTTP requests; zero means no client-side timeout.
func New(location string, timeout time.Duration) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnsupported)
	}

	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		return NewFileSource(location), nil
	}

	switch strings.ToLower(scheme) {
	case "http", "https":
		if _, err := url.ParseRequestURI(location); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return NewHTTPSource(location, &http.Client{Timeout: timeout}), nil
	case "file":
		return NewFileSource(rest), nil
	case "sqlite":
		path, table := parseSQLiteLocation(rest)
		if path == "" {
			return nil, fmt.Errorf("%w: missing database path in %q", ErrUnsupported, location)
		}
		return NewSQLiteSource(path, table), nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupported, scheme)
	}
}

// parseSQLiteLocation splits "path?table=name" into its parts. The table
// defaults to db.DefaultTable.
func parseSQLiteLocation(rest string) (path, table string) {
	path, query, _ := strings.Cut(rest, "?")
	table = db.DefaultTable
	if query != "" {
		if values, err := url.ParseQuery(query); err == nil && values.Get("table") != "" {
			table = values.Get("table")
		}
	}
	if path != "" {
		path = filepath.Clean(path)
	}
	return path, table
}
