// Package table parses delimited activity tables into typed records.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed delimited table with inferred cell types.
type Table struct {
	Header []string
	Rows   [][]Cell

	// SkippedRows counts rows whose every field was blank.
	SkippedRows int
	// RaggedRows counts rows whose field count differs from the header.
	RaggedRows int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the index of the named column, matched case-insensitively.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Parse reads comma-separated text with a header row. The first non-blank row is
// the header. Input without any non-blank row yields an empty table.
func Parse(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Table{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table: %w", err)
		}

		if t.Header == nil {
			if isBlankRecord(record) {
				continue
			}
			t.Header = make([]string, len(record))
			for i, h := range record {
				t.Header[i] = strings.TrimSpace(h)
			}
			continue
		}

		if isBlankRecord(record) {
			t.SkippedRows++
			continue
		}
		if len(record) != len(t.Header) {
			t.RaggedRows++
		}

		row := make([]Cell, len(t.Header))
		for i := range row {
			if i < len(record) {
				row[i] = Infer(record[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Table, error) {
	return Parse(strings.NewReader(s))
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
