package engagement

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

const (
	statCardWidth = 22
	shareBarWidth = 40
	nameWidth     = 28
)

// View renders the engagement tab.
func (m *Model) View() string {
	m.sync()

	sections := []string{m.renderTitle()}
	if m.report == nil {
		sections = append(sections, styles.HelpStyle.Render("No report loaded"))
	} else {
		sections = append(sections,
			m.renderStats(),
			m.renderShare(),
			m.renderRanking(),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Engagement")

	rule := fmt.Sprintf("High concentration: tx/user > %s", components.FormatRatio(m.classifier.Threshold))
	if m.classifier.RoundedCompare {
		rule += " (compared after rounding to 2 decimals)"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(rule), "")
}

func statCard(value, label string, style lipgloss.Style) string {
	return styles.CardStyle.Width(statCardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		style.Render(value),
		styles.StatLabelStyle.Render(label),
	))
}

// renderStats renders one card per bucket plus the total.
func (m *Model) renderStats() string {
	e := m.report.Engagement
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(fmt.Sprint(e.TotalProtocols), "protocols", styles.StatValueStyle),
		" ",
		statCard(fmt.Sprint(e.HighConcentration), "high concentration", styles.HighConcentrationStyle),
		" ",
		statCard(fmt.Sprint(e.HealthyEngagement), "healthy engagement", styles.HealthyStyle),
	)
}

func (m *Model) renderShare() string {
	share := m.report.Engagement.HighConcentrationShare()
	bar := components.RenderShareBar(share, shareBarWidth, styles.HighConcentrationStyle, styles.HealthyStyle)
	label := styles.HelpStyle.Render(fmt.Sprintf(" %s high concentration", components.FormatPercent(share)))

	return lipgloss.JoinVertical(lipgloss.Left, bar+label, "")
}

// renderRanking lists the high-concentration namespaces by tx-per-user.
func (m *Model) renderRanking() string {
	names := m.report.HighConcentrationNamespaces
	title := styles.SubTitleStyle.Render(fmt.Sprintf("High-concentration namespaces (%d)", len(names)))

	if len(names) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			styles.HealthyStyle.Render("No namespace exceeds the threshold"))
	}

	rows := []string{title}
	for i, name := range names {
		p := m.byName[name]
		label := ansi.Truncate(name, nameWidth, "…")
		label += strings.Repeat(" ", nameWidth-lipgloss.Width(label))

		rows = append(rows, fmt.Sprintf("%3d. %s %s tx/user  %s txs  %s users",
			i+1,
			label,
			styles.HighConcentrationStyle.Render(fmt.Sprintf("%10s", components.FormatRatio(p.TxPerUser))),
			components.FormatCount(p.TotalTxs),
			components.FormatCount(p.TotalUsers),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
