package daily

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

const (
	chartHeight = 8
	// axisWidth is the room asciigraph needs for its y axis labels.
	axisWidth = 12

	dateWidth  = 14
	countWidth = 12
	ratioWidth = 10
)

// View renders the daily tab.
func (m *Model) View() string {
	m.sync()

	var sections []string
	sections = append(sections, m.renderTitle())

	if m.report == nil || len(m.report.Daily) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No dated records in the current report"))
	} else {
		sections = append(sections,
			m.renderVolumeChart(),
			m.renderRatioChart(),
			m.renderTable(),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Daily Activity")

	subtitle := "Waiting for data"
	if m.report != nil {
		subtitle = fmt.Sprintf("%d days", len(m.report.Daily))
		if n := len(m.report.Daily); n > 0 {
			subtitle += fmt.Sprintf(" · %s – %s", m.report.Daily[0].Label, m.report.Daily[n-1].Label)
		}
		if m.report.UndatedRecords > 0 {
			subtitle += fmt.Sprintf(" · %d undated records excluded", m.report.UndatedRecords)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) chartWidth() int {
	return max(m.viewport.Width-axisWidth, 20)
}

// renderVolumeChart plots daily transactions and users on one axis.
func (m *Model) renderVolumeChart() string {
	txs := make([]float64, len(m.report.Daily))
	users := make([]float64, len(m.report.Daily))
	for i, d := range m.report.Daily {
		txs[i] = float64(d.TotalTxs)
		users[i] = float64(d.TotalUsers)
	}

	chart := components.RenderDualLineChart(txs, users, m.chartWidth(), chartHeight, "")
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "Transactions", Color: styles.Txs},
		{Label: "Active users", Color: styles.Users},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("Transactions and users per day"),
		chart,
		legend,
		"",
	)
}

// renderRatioChart plots the average tx-per-user of each day. Days without
// users are drawn at zero.
func (m *Model) renderRatioChart() string {
	ratios := make([]float64, len(m.report.Daily))
	for i, d := range m.report.Daily {
		ratios[i] = d.AvgTxPerUser
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("Average tx per user"),
		components.RenderLineChart(ratios, m.chartWidth(), chartHeight, ""),
		"",
	)
}

// renderTable lists every day with its totals.
func (m *Model) renderTable() string {
	days := m.report.Daily
	if m.newestFirst {
		days = slices.Clone(days)
		slices.Reverse(days)
	}

	header := strings.Join([]string{
		fmt.Sprintf("%-*s", dateWidth, "Date"),
		fmt.Sprintf("%*s", countWidth, "Txs"),
		fmt.Sprintf("%*s", countWidth, "Users"),
		fmt.Sprintf("%*s", ratioWidth, "Tx/User"),
		fmt.Sprintf("%*s", countWidth, "Protocols"),
	}, " ")

	rows := []string{
		styles.SubTitleStyle.Render("Per day"),
		styles.TableHeaderStyle.Render(header),
	}
	for _, d := range days {
		rows = append(rows, renderDay(d))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDay(d models.DailySummary) string {
	return strings.Join([]string{
		fmt.Sprintf("%-*s", dateWidth, d.Label),
		fmt.Sprintf("%*s", countWidth, components.FormatCount(d.TotalTxs)),
		fmt.Sprintf("%*s", countWidth, components.FormatCount(d.TotalUsers)),
		fmt.Sprintf("%*s", ratioWidth, components.FormatRatio(d.AvgTxPerUser)),
		fmt.Sprintf("%*d", countWidth, d.ProtocolsCount),
	}, " ")
}
