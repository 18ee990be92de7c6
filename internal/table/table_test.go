package table

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		num  float64
		b    bool
	}{
		{"", KindNull, 0, false},
		{"   ", KindNull, 0, false},
		{"42", KindNumber, 42, false},
		{" 3.5 ", KindNumber, 3.5, false},
		{"-7", KindNumber, -7, false},
		{"1e3", KindNumber, 1000, false},
		{"true", KindBool, 0, true},
		{"FALSE", KindBool, 0, false},
		{"dex", KindString, 0, false},
		{"12abc", KindString, 0, false},
		{"NaN", KindString, 0, false},
		{"Inf", KindString, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := Infer(tt.raw)
			if c.Kind != tt.kind || c.Num != tt.num || c.Bool != tt.b {
				t.Errorf("Infer(%q) = {%v %v %v}, want {%v %v %v}",
					tt.raw, c.Kind, c.Num, c.Bool, tt.kind, tt.num, tt.b)
			}
			if c.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", c.Raw, tt.raw)
			}
		})
	}
}

func TestCell_Count(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"500", 500, true},
		{"500.0", 500, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"2.5", 0, false},
		{"", 0, false},
		{"many", 0, false},
		{"true", 0, false},
		{"1e300", 0, false},
		{"-0", 0, true},
		{"1e3", 1000, true},
		{"9007199254740993", 9007199254740993, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"9223372036854775808", 0, false},
		{"1e16", 0, false},
		{"9007199254740993.0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Infer(tt.raw).Count()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Count(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParse_Basic(t *testing.T) {
	input := "namespace,date,daily_incoming_txs,daily_active_users\n" +
		"dex,2024-01-01,500,10\n" +
		"dex,2024-01-02,300,5\n"

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	wantHeader := []string{"namespace", "date", "daily_incoming_txs", "daily_active_users"}
	if !reflect.DeepEqual(tbl.Header, wantHeader) {
		t.Errorf("Header = %v, want %v", tbl.Header, wantHeader)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Rows[0][0].Kind != KindString {
		t.Errorf("namespace kind = %v, want string", tbl.Rows[0][0].Kind)
	}
	if c := tbl.Rows[0][2]; c.Kind != KindNumber || c.Num != 500 {
		t.Errorf("txs cell = {%v %v}, want number 500", c.Kind, c.Num)
	}
}

func TestParse_SkipsBlankRowsAndBOM(t *testing.T) {
	input := "\ufeffnamespace,date,daily_incoming_txs,daily_active_users\n" +
		"\n" +
		",,,\n" +
		"dex,2024-01-01,1,1\n" +
		"   ,  ,,\n"

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if tbl.Header[0] != "namespace" {
		t.Errorf("Header[0] = %q, want BOM stripped", tbl.Header[0])
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
	if tbl.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", tbl.SkippedRows)
	}
}

func TestParse_RaggedRows(t *testing.T) {
	input := "namespace,date,daily_incoming_txs,daily_active_users\n" +
		"dex,2024-01-01,10\n" +
		"lend,2024-01-01,1,2,extra\n"

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.RaggedRows != 2 {
		t.Errorf("RaggedRows = %d, want 2", tbl.RaggedRows)
	}
	if !tbl.Rows[0][3].IsBlank() {
		t.Error("missing trailing field should be null")
	}
	if len(tbl.Rows[1]) != 4 {
		t.Errorf("len(row) = %d, extra fields should be dropped", len(tbl.Rows[1]))
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "  \n"} {
		tbl, err := ParseString(input)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", input, err)
		}
		if tbl.Header != nil || tbl.Len() != 0 {
			t.Errorf("ParseString(%q) = %v, %d rows; want no header or rows", input, tbl.Header, tbl.Len())
		}

		set, err := Records(tbl)
		if err != nil {
			t.Fatalf("Records: %v", err)
		}
		if len(set.Records) != 0 {
			t.Errorf("got %d records, want none", len(set.Records))
		}
	}
}

func TestParse_SyntaxError(t *testing.T) {
	if _, err := ParseString("namespace,date\n\"dex,2024-01-01\n\"x\"y,1\n"); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestRecords(t *testing.T) {
	input := "Namespace,Date,Daily_Incoming_Txs,Daily_Active_Users,chain\n" +
		"dex,2024-01-01,500,10,a\n" +
		"123,2024-01-02T10:00:00Z,,5,b\n" +
		"lend,not-a-date,-4,2.5,c\n" +
		"perp,01/03/2024,7\n"

	set := mustRecords(t, input)
	if len(set.Records) != 4 {
		t.Fatalf("got %d records, want 4", len(set.Records))
	}

	r := set.Records[0]
	if r.Namespace != "dex" {
		t.Errorf("Namespace = %q, want dex", r.Namespace)
	}
	assertDate(t, r, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if r.DailyIncomingTxs.OrZero() != 500 || !r.DailyActiveUsers.Valid {
		t.Errorf("counts = %+v, %+v", r.DailyIncomingTxs, r.DailyActiveUsers)
	}

	r = set.Records[1]
	if r.Namespace != "123" {
		t.Errorf("Namespace = %q, numeric-looking namespace should stay a string", r.Namespace)
	}
	assertDate(t, r, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if r.DailyIncomingTxs.Valid {
		t.Error("blank txs should be missing")
	}

	r = set.Records[2]
	if r.HasDate() {
		t.Error("not-a-date should leave the record undated")
	}
	if r.DateRaw != "not-a-date" {
		t.Errorf("DateRaw = %q", r.DateRaw)
	}
	if r.DailyIncomingTxs.Valid || r.DailyActiveUsers.Valid {
		t.Error("-4 and 2.5 should be missing")
	}

	r = set.Records[3]
	assertDate(t, r, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	if r.DailyIncomingTxs.Value != 7 || r.DailyActiveUsers.Valid {
		t.Errorf("counts = %+v, %+v", r.DailyIncomingTxs, r.DailyActiveUsers)
	}

	// not-a-date, -4 and 2.5 were present but unusable
	if set.CoercedFields != 3 {
		t.Errorf("CoercedFields = %d, want 3", set.CoercedFields)
	}
}

func TestRecords_MissingColumn(t *testing.T) {
	tbl, err := ParseString("namespace,date,daily_incoming_txs\ndex,2024-01-01,1\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	_, err = Records(tbl)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
	if !strings.Contains(err.Error(), "daily_active_users") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestRecords_HeaderOnly(t *testing.T) {
	set := mustRecords(t, "namespace,date,daily_incoming_txs,daily_active_users\n")
	if len(set.Records) != 0 {
		t.Errorf("got %d records, want none", len(set.Records))
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-03-09",
		"2024-03-09T15:04:05Z",
		"2024-03-09T23:30:00-05:00",
		"2024-03-09 08:00:00",
		"03/09/2024",
		"2024/03/09",
		"Mar 9, 2024",
		"9 Mar 2024",
	} {
		if got, ok := ParseDate(s); !ok || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v", s, got, ok, want)
		}
	}

	for _, s := range []string{"yesterday", ""} {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestRecords_MinimumDateIsDated(t *testing.T) {
	set := mustRecords(t, "namespace,date,daily_incoming_txs,daily_active_users\n"+
		"dex,0001-01-01,1,1\n")

	r := set.Records[0]
	if !r.HasDate() {
		t.Error("0001-01-01 is a valid calendar date")
	}
	if !r.Date.Equal(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", r.Date)
	}
	if set.CoercedFields != 0 {
		t.Errorf("CoercedFields = %d, want 0", set.CoercedFields)
	}
}

func TestRecords_LargeCountsAreExact(t *testing.T) {
	set := mustRecords(t, "namespace,date,daily_incoming_txs,daily_active_users\n"+
		"dex,2024-01-01,9007199254740993,9223372036854775807\n"+
		"dex,2024-01-02,9223372036854775808,1\n")

	r := set.Records[0]
	if r.DailyIncomingTxs.Value != 9007199254740993 {
		t.Errorf("txs = %d, want 9007199254740993", r.DailyIncomingTxs.Value)
	}
	if r.DailyActiveUsers.Value != math.MaxInt64 {
		t.Errorf("users = %d, want MaxInt64", r.DailyActiveUsers.Value)
	}

	if set.Records[1].DailyIncomingTxs.Valid {
		t.Error("a count beyond int64 should be missing")
	}
	if set.CoercedFields != 1 {
		t.Errorf("CoercedFields = %d, want 1", set.CoercedFields)
	}
}

func mustRecords(t *testing.T, input string) *RecordSet {
	t.Helper()
	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	set, err := Records(tbl)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	return set
}

func assertDate(t *testing.T, r models.RawRecord, want time.Time) {
	t.Helper()
	if !r.HasDate() || !r.Date.Equal(want) {
		t.Errorf("date = %v (dated %v), want %v", r.Date, r.HasDate(), want)
	}
}
