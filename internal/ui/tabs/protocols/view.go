package protocols

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

// Column widths of the table. The namespace column takes the rest.
const (
	markerWidth       = 2
	rankWidth         = 4
	countWidth        = 12
	daysWidth         = 6
	ratioWidth        = 10
	minNamespaceWidth = 12
	columnGaps        = 7

	minBodyHeight = 5
	minChartBars  = 3
	chartOverhead = 3 // title, its margin and a trailing blank line
	headerHeight  = 2
)

func fixedColumnsWidth() int {
	return markerWidth + rankWidth + 4*countWidth + daysWidth + ratioWidth + columnGaps
}

// View renders the protocols tab.
func (m *Model) View() string {
	m.sync()

	contentWidth := max(m.width-6, 40)
	available := max(m.height-2, 0)

	header := m.renderTitle()
	if len(m.rows) == 0 {
		return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			styles.HelpStyle.Render("No protocols in the current report"),
		))
	}

	used := lipgloss.Height(header)

	// Chart of the top namespaces when there is room left for the table.
	var chart string
	bars := min(m.topN(), len(m.report.Protocols), available-used-chartOverhead-headerHeight-minBodyHeight)
	if bars >= minChartBars {
		chart = m.renderChart(bars, contentWidth)
		used += lipgloss.Height(chart)
	}

	tableHeader := m.renderHeader(contentWidth)
	used += lipgloss.Height(tableHeader)

	m.viewport.Width = contentWidth
	m.viewport.Height = max(available-used, 1)
	m.viewport.SetContent(m.renderRows(contentWidth))
	m.selectRow(m.selected)

	sections := []string{header}
	if chart != "" {
		sections = append(sections, chart)
	}
	sections = append(sections, tableHeader, m.viewport.View())

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) topN() int {
	if m.config == nil || m.config.TopN <= 0 {
		return 10
	}
	return m.config.TopN
}

// renderTitle renders the tab title and a one-line summary of the report.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Protocols")

	subtitle := "Waiting for data"
	if m.report != nil {
		subtitle = fmt.Sprintf("%d namespaces · %s txs · sorted by %s",
			len(m.rows),
			components.FormatCount(m.report.TotalTxs()),
			m.sort,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderChart renders the top namespaces by transactions, colored by
// engagement.
func (m *Model) renderChart(n, width int) string {
	top := m.report.Protocols[:n]

	values := make([]float64, n)
	labels := make([]string, n)
	for i, p := range top {
		values[i] = float64(p.TotalTxs)
		labels[i] = p.Namespace
	}

	bars := components.RenderBarChart(values, labels, width,
		func(v float64) string { return components.FormatCount(int64(v)) },
		func(i int) lipgloss.Style {
			return styles.GetEngagementStyle(top[i].TxPerUser, m.classifier.Threshold)
		},
	)

	title := styles.SubTitleStyle.Render(fmt.Sprintf("Top %d by transactions", n))
	return lipgloss.JoinVertical(lipgloss.Left, title, bars, "")
}

func namespaceWidth(contentWidth int) int {
	return max(minNamespaceWidth, contentWidth-fixedColumnsWidth())
}

func (m *Model) renderHeader(width int) string {
	nsWidth := namespaceWidth(width)
	cells := []string{
		strings.Repeat(" ", markerWidth) + fmt.Sprintf("%*s", rankWidth, "#"),
		fmt.Sprintf("%-*s", nsWidth, "Namespace"),
		fmt.Sprintf("%*s", countWidth, "Total Txs"),
		fmt.Sprintf("%*s", countWidth, "Total Users"),
		fmt.Sprintf("%*s", daysWidth, "Days"),
		fmt.Sprintf("%*s", countWidth, "Users/Day"),
		fmt.Sprintf("%*s", ratioWidth, "Tx/User"),
		fmt.Sprintf("%*s", countWidth, "Tx/User/Day"),
	}
	return styles.TableHeaderStyle.Width(width).Render(ansi.Truncate(strings.Join(cells, " "), width, ""))
}

func (m *Model) renderRows(width int) string {
	lines := make([]string, len(m.rows))
	for i, p := range m.rows {
		// Rows wider than the viewport would wrap and shift the selection.
		lines[i] = ansi.Truncate(m.renderRow(i, p, width), width, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one table row. The selected row is rendered without
// per-cell colors so the selection style applies to the whole line.
func (m *Model) renderRow(i int, p models.ProtocolSummary, width int) string {
	nsWidth := namespaceWidth(width)
	selected := i == m.selected
	high := m.classifier.IsHighConcentration(p)

	marker := strings.Repeat(" ", markerWidth)
	if high {
		marker = "▲ "
	}

	ratio := fmt.Sprintf("%*s", ratioWidth, components.FormatRatio(p.TxPerUser))
	if !selected {
		ratio = styles.GetEngagementStyle(p.TxPerUser, m.classifier.Threshold).Render(ratio)
		if high {
			marker = styles.HighConcentrationStyle.Render(marker)
		}
	}

	namespace := ansi.Truncate(p.Namespace, nsWidth, "…")
	namespace += strings.Repeat(" ", nsWidth-lipgloss.Width(namespace))

	cells := []string{
		marker + fmt.Sprintf("%*d", rankWidth, i+1),
		namespace,
		fmt.Sprintf("%*s", countWidth, components.FormatCount(p.TotalTxs)),
		fmt.Sprintf("%*s", countWidth, components.FormatCount(p.TotalUsers)),
		fmt.Sprintf("%*d", daysWidth, p.DaysActive),
		fmt.Sprintf("%*s", countWidth, components.FormatRatio(p.AvgDailyUsers)),
		ratio,
		fmt.Sprintf("%*s", countWidth, components.FormatRatio(p.TxConcentration)),
	}
	line := strings.Join(cells, " ")

	if selected {
		line += strings.Repeat(" ", max(width-lipgloss.Width(line), 0))
		return styles.TableSelectedStyle.Render(line)
	}
	return line
}
