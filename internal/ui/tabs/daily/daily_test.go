package daily

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/namespace-activity-tui/internal/app"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

func testReport() *models.Report {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return &models.Report{
		Daily: []models.DailySummary{
			{Date: day(1), Label: "Jan 1, 2024", TotalTxs: 500, TotalUsers: 10, AvgTxPerUser: 50, ProtocolsCount: 2},
			{Date: day(2), Label: "Jan 2, 2024", TotalTxs: 300, TotalUsers: 0, AvgTxPerUser: math.NaN(), ProtocolsCount: 1},
		},
		RecordCount:    4,
		UndatedRecords: 1,
	}
}

func newTestModel(report *models.Report) (*Model, *app.State) {
	state := app.NewState()
	if report != nil {
		state.SetLoadState(models.Ready{Report: report, LoadedAt: time.Now()})
	}
	m := New(state)
	m.SetSize(100, 60)
	return m, state
}

func TestNew(t *testing.T) {
	m, _ := newTestModel(nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestView_NoReport(t *testing.T) {
	m, _ := newTestModel(nil)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Waiting for data") || !strings.Contains(view, "No dated records") {
		t.Errorf("view without report:\n%s", view)
	}
}

func TestView_NoDailyRows(t *testing.T) {
	m, _ := newTestModel(&models.Report{RecordCount: 2, UndatedRecords: 2})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "0 days") || !strings.Contains(view, "2 undated records excluded") {
		t.Errorf("view:\n%s", view)
	}
	if !strings.Contains(view, "No dated records") {
		t.Error("charts should be replaced by a hint")
	}
}

func TestView_Report(t *testing.T) {
	m, _ := newTestModel(testReport())
	view := ansi.Strip(m.View())

	for _, want := range []string{
		"2 days", "Jan 1, 2024 – Jan 2, 2024", "1 undated records excluded",
		"Transactions and users per day", "Average tx per user",
		"Transactions", "Active users",
		"Per day", "50.00", "—",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func tableOrder(t *testing.T, view string) (first, second int) {
	t.Helper()
	_, table, ok := strings.Cut(view, "Per day")
	if !ok {
		t.Fatalf("no table in view:\n%s", view)
	}
	return strings.Index(table, "Jan 1, 2024"), strings.Index(table, "Jan 2, 2024")
}

func TestOrderToggle(t *testing.T) {
	m, _ := newTestModel(testReport())

	jan1, jan2 := tableOrder(t, ansi.Strip(m.View()))
	if jan1 < 0 || jan2 < 0 || jan1 > jan2 {
		t.Errorf("default order should be oldest first (%d, %d)", jan1, jan2)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	jan1, jan2 = tableOrder(t, ansi.Strip(m.View()))
	if jan1 < jan2 {
		t.Errorf("o should put the newest day first (%d, %d)", jan1, jan2)
	}
	if m.report.Daily[0].Label != "Jan 1, 2024" {
		t.Error("reordering must not modify the report")
	}
}

func TestScrollResetsOnNewReport(t *testing.T) {
	m, state := newTestModel(testReport())
	m.SetSize(100, 10)
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.viewport.YOffset != 1 {
		t.Fatalf("YOffset = %d, want 1", m.viewport.YOffset)
	}

	state.SetLoadState(models.Ready{Report: testReport(), LoadedAt: time.Now().Add(time.Minute)})
	m.Update(app.LoadStateChangedMsg{State: state.LoadState()})
	if m.viewport.YOffset != 0 {
		t.Errorf("new report should scroll to top, YOffset = %d", m.viewport.YOffset)
	}
}

func TestHelp(t *testing.T) {
	m, _ := newTestModel(nil)
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help should not be empty")
	}
}
