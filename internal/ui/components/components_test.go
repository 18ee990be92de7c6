package components

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("data.csv")
	if s.Source() != "data.csv" {
		t.Errorf("Source = %q, want data.csv", s.Source())
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("a.csv")

	s.SetSource("b.csv")
	if s.Source() != "b.csv" {
		t.Errorf("Source = %s, want b.csv", s.Source())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}

	_, cmd := s.Update(s.Tick()())
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestSpinner_ViewLoading(t *testing.T) {
	s := NewSpinner("data.csv")
	now := time.Now()

	if got := ansi.Strip(s.ViewLoading(now.Add(-200*time.Millisecond), now)); !strings.HasSuffix(got, "Loading data.csv...") {
		t.Errorf("short load should not show elapsed time: %q", got)
	}
	if got := ansi.Strip(s.ViewLoading(now.Add(-2500*time.Millisecond), now)); !strings.HasSuffix(got, "Loading data.csv... 2.5s") {
		t.Errorf("long load should show elapsed time: %q", got)
	}
	if got := ansi.Strip(s.ViewLoading(time.Time{}, now)); !strings.HasSuffix(got, "Loading data.csv...") {
		t.Errorf("zero start should not show elapsed time: %q", got)
	}
}

func TestSpinner_IgnoresForeignTicks(t *testing.T) {
	s := NewSpinner("data.csv")
	_, cmd := s.Update(spinner.TickMsg{ID: s.spinner.ID() + 1})
	if cmd != nil {
		t.Error("tick for another spinner should be ignored")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("data.csv")
	now := time.Now()
	view := RenderSpinnerCentered(s, now, now, 30, 5)
	if lipgloss.Height(view) != 5 {
		t.Errorf("height = %d, want 5", lipgloss.Height(view))
	}
}

func TestRenderLineChart(t *testing.T) {
	s := RenderLineChart([]float64{1, 2, math.NaN(), 4}, 20, 5, "Test")
	if !strings.Contains(s, "Test") {
		t.Error("RenderLineChart should include caption")
	}

	if got := RenderLineChart(nil, 20, 5, ""); !strings.Contains(got, "No data") {
		t.Errorf("empty chart = %q", got)
	}
}

func TestRenderDualLineChart(t *testing.T) {
	s := RenderDualLineChart([]float64{1, 2, 3}, []float64{3, 2}, 20, 5, "Title")
	if !strings.Contains(s, "Title") {
		t.Error("RenderDualLineChart should include caption")
	}

	if got := RenderDualLineChart(nil, nil, 20, 5, ""); !strings.Contains(got, "No data") {
		t.Errorf("empty chart = %q", got)
	}
}

func TestRenderBarChart(t *testing.T) {
	values := []float64{10, 20, 0}
	labels := []string{"A", "a-very-long-namespace-label", "C"}
	s := RenderBarChart(values, labels, 40, func(v float64) string { return FormatCount(int64(v)) }, nil)

	lines := strings.Split(s, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], " 20") {
		t.Errorf("line %q should end with its value", lines[1])
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[0], "█") {
		t.Error("larger value should have a longer bar")
	}
	if strings.Contains(lines[2], "█") {
		t.Error("zero value should have no bar")
	}
	if !strings.Contains(lines[1], "…") {
		t.Error("long label should be truncated")
	}

	if RenderBarChart(nil, nil, 40, nil, nil) != "" {
		t.Error("empty bar chart should render nothing")
	}
}

func TestRenderBarChart_Style(t *testing.T) {
	called := 0
	style := func(i int) lipgloss.Style {
		called++
		return lipgloss.NewStyle()
	}
	RenderBarChart([]float64{1, 2}, []string{"a", "b"}, 30, nil, style)
	if called != 2 {
		t.Errorf("style called %d times, want 2", called)
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{0, 4, 8}, 10)
	if s != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", s)
	}

	if RenderSparkline(nil, 10) != "" {
		t.Error("empty sparkline should render nothing")
	}
	if got := []rune(RenderSparkline(make([]float64, 100), 10)); len(got) != 10 {
		t.Errorf("sparkline width = %d, want 10", len(got))
	}
}

func TestRenderShareBar(t *testing.T) {
	plain := lipgloss.NewStyle()
	tests := []struct {
		share  float64
		filled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
		{-1, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		bar := ansi.Strip(RenderShareBar(tt.share, 10, plain, plain))
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("share %v: filled = %d, want %d", tt.share, got, tt.filled)
		}
		if got := len([]rune(bar)); got != 10 {
			t.Errorf("share %v: width = %d, want 10", tt.share, got)
		}
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "Txs", Color: styles.Txs},
		{Label: "Users", Color: styles.Users},
	}
	s := ansi.Strip(RenderLegend(items))
	if s != "■ Txs  ■ Users" {
		t.Errorf("RenderLegend = %q", s)
	}
}

func TestSeriesColor(t *testing.T) {
	tests := []struct {
		color lipgloss.Color
		want  asciigraph.AnsiColor
	}{
		{styles.Txs, asciigraph.DarkOrange},
		{styles.Users, asciigraph.DeepSkyBlue},
		{lipgloss.Color("141"), asciigraph.AnsiColor(141)},
		{lipgloss.Color("#cc785c"), asciigraph.Default},
		{lipgloss.Color("300"), asciigraph.Default},
	}

	for _, tt := range tests {
		if got := seriesColor(tt.color); got != tt.want {
			t.Errorf("seriesColor(%q) = %v, want %v", tt.color, got, tt.want)
		}
	}
}

func TestRenderDualLineChart_UsesLegendColors(t *testing.T) {
	chart := RenderDualLineChart([]float64{1, 5, 3}, []float64{2, 1, 4}, 20, 4, "")
	for _, c := range []lipgloss.Color{styles.Txs, styles.Users} {
		if seq := seriesColor(c).String(); !strings.Contains(chart, seq) {
			t.Errorf("chart should plot in %s (%q)", c, seq)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
		{math.MaxInt64, "9,223,372,036,854,775,807"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(800.0 / 15); got != "53.33" {
		t.Errorf("FormatRatio = %q, want 53.33", got)
	}
	if got := FormatRatio(math.NaN()); got != Undefined {
		t.Errorf("FormatRatio(NaN) = %q, want %q", got, Undefined)
	}
	if got := FormatRatio(math.Inf(1)); got != "∞" {
		t.Errorf("FormatRatio(Inf) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.25); got != "25.0%" {
		t.Errorf("FormatPercent = %q, want 25.0%%", got)
	}
	if got := FormatPercent(math.NaN()); got != Undefined {
		t.Errorf("FormatPercent(NaN) = %q", got)
	}
}
