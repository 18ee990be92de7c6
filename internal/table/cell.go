package table

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a cell.
type Kind int

const (
	// KindNull is an empty cell.
	KindNull Kind = iota
	// KindNumber is a cell whose full text parses as a finite number.
	KindNumber
	// KindBool is a cell holding true or false.
	KindBool
	// KindString is any other cell.
	KindString
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Cell is one field of a row with its inferred type.
type Cell struct {
	Raw  string
	Kind Kind
	Num  float64
	Bool bool
}

// Infer classifies raw text. Surrounding whitespace is ignored for inference but
// kept in Raw.
func Infer(raw string) Cell {
	c := Cell{Raw: raw}
	s := strings.TrimSpace(raw)

	switch {
	case s == "":
		c.Kind = KindNull
	case strings.EqualFold(s, "true"):
		c.Kind = KindBool
		c.Bool = true
	case strings.EqualFold(s, "false"):
		c.Kind = KindBool
	default:
		c.Kind = KindString
		if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			c.Kind = KindNumber
			c.Num = n
		}
	}
	return c
}

// IsBlank reports whether the cell carries no content.
func (c Cell) IsBlank() bool {
	return c.Kind == KindNull
}

// Text returns the trimmed raw text.
func (c Cell) Text() string {
	return strings.TrimSpace(c.Raw)
}

// maxExactFloat is 2^53. Integral float64 values below it cannot have been
// rounded from a neighbouring integer.
const maxExactFloat = 1 << 53

// Count converts the cell to a non-negative integer. Integer text is read
// exactly up to math.MaxInt64. Other numeric forms such as "500.0" or "1e3"
// convert only when integral and below 2^53, where float64 is still exact.
func (c Cell) Count() (int64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}

	n, err := strconv.ParseInt(c.Text(), 10, 64)
	switch {
	case err == nil && n >= 0:
		return n, true
	case err == nil, errors.Is(err, strconv.ErrRange):
		return 0, false
	}

	if c.Num < 0 || c.Num != math.Trunc(c.Num) || c.Num >= maxExactFloat {
		return 0, false
	}
	return int64(c.Num), true
}
