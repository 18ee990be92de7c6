package info

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
	"github.com/j-veylop/namespace-activity-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderSourceCard(),
		m.renderLoadCard(),
		m.renderSettingsCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Data source, settings and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-8, 50), 80)
}

func (m *Model) card(title string, rows ...string) string {
	content := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(20).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orUndefined(s string) string {
	if s == "" {
		return components.Undefined
	}
	return s
}

func (m *Model) renderSourceCard() string {
	var rows []string

	if m.source != nil {
		rows = append(rows,
			renderRow("Source", m.source.SourceDescription()),
			renderRow("Watching", yesNo(m.source.Watching())),
		)
	} else if m.config != nil {
		rows = append(rows, renderRow("Source", m.config.DataSource))
	}

	if m.config != nil {
		rows = append(rows,
			renderRow("Fetch Timeout", m.config.FetchTimeout.String()),
			renderRow("Env File", orUndefined(m.config.EnvFile)),
			renderRow("Log File", orUndefined(m.config.LogFile)),
		)
	}

	if len(rows) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return m.card("Data Source", rows...)
}

// renderLoadCard renders the load state and the counters of the last report.
func (m *Model) renderLoadCard() string {
	ls := m.state.LoadState()
	loadedAt, took := m.state.LastLoad()

	rows := []string{renderRow("State", ls.Phase().String())}

	if loadedAt.IsZero() {
		rows = append(rows, renderRow("Last Load", "never"))
	} else {
		rows = append(rows,
			renderRow("Last Load", fmt.Sprintf("%s (%s)", loadedAt.Local().Format(time.DateTime), humanize.Time(loadedAt))),
			renderRow("Load Duration", took.Round(time.Millisecond).String()),
			renderRow("Successful Loads", strconv.Itoa(m.state.SuccessfulLoads())),
		)
	}

	if failed, ok := ls.(models.Failed); ok && failed.Err != nil {
		rows = append(rows, renderRow("Last Error", styles.ErrorTextStyle.Render(failed.Err.Error())))
	}

	if r := m.state.Report(); r != nil {
		rows = append(rows,
			"",
			renderRow("Records", components.FormatCount(int64(r.RecordCount))),
			renderRow("Protocols", strconv.Itoa(len(r.Protocols))),
			renderRow("Days", strconv.Itoa(len(r.Daily))),
			renderRow("Skipped Rows", strconv.Itoa(r.SkippedRows)),
			renderRow("Coerced Fields", strconv.Itoa(r.CoercedFields)),
			renderRow("Undated Records", strconv.Itoa(r.UndatedRecords)),
		)
	}

	return m.card("Last Load", rows...)
}

func (m *Model) renderSettingsCard() string {
	if m.config == nil {
		return m.card("Settings", styles.HelpStyle.Render("Configuration not loaded"))
	}

	return m.card("Settings",
		renderRow("Threshold", components.FormatRatio(m.config.EngagementThreshold)+" tx/user"),
		renderRow("Rounded Compare", yesNo(m.config.RoundedRatioCompare)),
		renderRow("Chart Top N", strconv.Itoa(m.config.TopN)),
		renderRow("Notifications", yesNo(m.config.DesktopNotifications)),
		renderRow("Log Level", m.config.LogLevel),
	)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	return m.card("About "+version.Name,
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}
