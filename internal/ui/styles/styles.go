// Package styles defines the visual styling for the application.
package styles

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Color definitions for the dashboard theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Series colors. These are 256-color indices so that asciigraph can plot
	// them as well.
	Txs   = lipgloss.Color("208") // Orange
	Users = lipgloss.Color("39")  // Blue
	Ratio = lipgloss.Color("141") // Lavender

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)




// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// StatValueStyle renders headline numbers inside cards.
var StatValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// StatLabelStyle renders the caption under a headline number.
var StatLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)






// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpSeparatorStyle styles separators in help text.
var HelpSeparatorStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)


// TableSelectedStyle styles selected table rows.
var TableSelectedStyle = lipgloss.NewStyle().
	Background(BgAccent).
	Foreground(TextPrimary).
	Bold(true)

// HighConcentrationStyle marks namespaces above the engagement threshold.
var HighConcentrationStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// NearThresholdStyle marks namespaces within 20% below the threshold.
var NearThresholdStyle = lipgloss.NewStyle().
	Foreground(Warning)

// HealthyStyle marks namespaces with healthy engagement.
var HealthyStyle = lipgloss.NewStyle().
	Foreground(Success)

// UndefinedStyle marks ratios without users.
var UndefinedStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)




// GetEngagementStyle returns the style for a tx-per-user ratio relative to
// threshold.
func GetEngagementStyle(ratio, threshold float64) lipgloss.Style {
	switch {
	case math.IsNaN(ratio):
		return UndefinedStyle
	case ratio > threshold:
		return HighConcentrationStyle
	case ratio > threshold*0.8:
		return NearThresholdStyle
	default:
		return HealthyStyle
	}
}


// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
