// Package daily provides the per-day activity tab.
package daily

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/namespace-activity-tui/internal/app"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// keyMap defines the key bindings specific to the daily tab.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Order    key.Binding
}

// defaultKeyMap returns the default key bindings for the daily tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "newest/oldest first"),
		),
	}
}

// Model represents the daily tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model

	report      *models.Report
	newestFirst bool

	width  int
	height int
}

// New creates a new daily model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the daily tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the daily tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Order) {
		m.newestFirst = !m.newestFirst
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(keyMsg)
	return m, cmd
}

// sync picks up a new report from the shared state and scrolls back to the
// top when it changes.
func (m *Model) sync() {
	if report := m.state.Report(); report != m.report {
		m.report = report
		m.viewport.GotoTop()
	}
}

// SetSize sets the available size for the daily tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Order}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown},
		{m.keys.Order},
	}
}
