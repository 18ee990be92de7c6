// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

// seriesColor converts a 256-color palette entry to the asciigraph color
// with the same index. Other colors plot uncolored.
func seriesColor(c lipgloss.Color) asciigraph.AnsiColor {
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return asciigraph.Default
	}
	return asciigraph.AnsiColor(n)
}

// plotDimensions clamps chart dimensions to a readable minimum.
func plotDimensions(width, height int) (int, int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	return width, height
}

// finite replaces NaN and infinite points with zero so that every day keeps
// its position on the x axis.
func finite(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
		}
	}
	return out
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width, height = plotDimensions(width, height)

	return asciigraph.Plot(finite(data),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(seriesColor(styles.Ratio)),
	)
}

// RenderDualLineChart plots transactions and users on a shared axis in the
// styles.Txs and styles.Users colors.
func RenderDualLineChart(txs, users []float64, width, height int, caption string) string {
	if len(txs) == 0 && len(users) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width, height = plotDimensions(width, height)

	// Normalize lengths - pad shorter array with zeros
	n := max(len(txs), len(users))
	txData := make([]float64, n)
	userData := make([]float64, n)
	copy(txData, finite(txs))
	copy(userData, finite(users))

	return asciigraph.PlotMany([][]float64{txData, userData},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			seriesColor(styles.Txs),
			seriesColor(styles.Users),
		),
	)
}

// BarStyle picks the style of one bar by index.
type BarStyle func(i int) lipgloss.Style

// RenderBarChart creates a horizontal bar chart. Labels longer than a third of
// the width are truncated. format renders the value after each bar.
func RenderBarChart(values []float64, labels []string, width int, format func(float64) string, style BarStyle) string {
	if len(values) == 0 {
		return ""
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}
	labelWidth = min(labelWidth, max(width/3, 8))

	valueTexts := make([]string, len(values))
	valueWidth := 0
	for i, v := range values {
		valueTexts[i] = format(v)
		valueWidth = max(valueWidth, lipgloss.Width(valueTexts[i]))
	}

	barWidth := width - labelWidth - valueWidth - 4
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = ansi.Truncate(labels[i], labelWidth, "…")
		}
		padded := strings.Repeat(" ", labelWidth-lipgloss.Width(label)) + label

		barLen := 0
		if v > 0 {
			barLen = int((v / maxVal) * float64(barWidth))
		}
		bar := strings.Repeat("█", barLen)
		if style != nil {
			bar = style(i).Render(bar)
		}

		lines = append(lines, padded+" │"+bar+" "+valueTexts[i])
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	values = finite(values)

	// Find max value
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = max(0, min(normalized, len(sparkChars)-1))
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderShareBar renders a two-segment bar of the given width where share of
// it, in [0, 1], uses the first style.
func RenderShareBar(share float64, width int, filled, rest lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(share) || share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	n := int(math.Round(share * float64(width)))
	return filled.Render(strings.Repeat("█", n)) + rest.Render(strings.Repeat("░", width-n))
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
