package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

// elapsedAfter is how long a load runs before its elapsed time is shown.
const elapsedAfter = time.Second

// LoadingSpinner is the spinner shown while a source is being loaded.
type LoadingSpinner struct {
	spinner spinner.Model
	source  string
	style   lipgloss.Style
}

// NewSpinner creates a loading spinner for source.
func NewSpinner(source string) LoadingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadingSpinner{
		spinner: s,
		source:  source,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Update advances the animation on the spinner's own tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Tick starts the animation.
func (l LoadingSpinner) Tick() tea.Cmd {
	return l.spinner.Tick
}

// View renders the spinner glyph alone.
func (l LoadingSpinner) View() string {
	return l.spinner.View()
}

// SetSource changes the source named by ViewLoading.
func (l *LoadingSpinner) SetSource(source string) {
	l.source = source
}

// Source returns the source named by ViewLoading.
func (l LoadingSpinner) Source() string {
	return l.source
}

// ViewLoading renders "Loading <source>..." and, for loads running longer
// than a second, the time elapsed since started.
func (l LoadingSpinner) ViewLoading(started, now time.Time) string {
	text := fmt.Sprintf("Loading %s...", l.source)
	if !started.IsZero() {
		if elapsed := now.Sub(started); elapsed >= elapsedAfter {
			text += fmt.Sprintf(" %s", elapsed.Truncate(100*time.Millisecond))
		}
	}
	return l.spinner.View() + " " + l.style.Render(text)
}

// RenderSpinnerCentered renders the loading line centered in width x height.
func RenderSpinnerCentered(s LoadingSpinner, started, now time.Time, width, height int) string {
	return styles.CenterBoth(s.ViewLoading(started, now), width, height)
}
