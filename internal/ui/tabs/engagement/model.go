// Package engagement provides the engagement breakdown tab.
package engagement

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/namespace-activity-tui/internal/analytics"
	"github.com/j-veylop/namespace-activity-tui/internal/app"
	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// keyMap defines the key bindings specific to the engagement tab.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the engagement tab.
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
	}
}

// Model represents the engagement tab state.
type Model struct {
	state      *app.State
	classifier analytics.Classifier
	keys       keyMap
	viewport   viewport.Model

	report *models.Report
	// byName indexes the report's protocols for the ranked list.
	byName map[string]models.ProtocolSummary

	width  int
	height int
}

// New creates a new engagement model.
func New(state *app.State, cfg *config.Config) *Model {
	classifier := analytics.DefaultClassifier()
	if cfg != nil && cfg.EngagementThreshold > 0 {
		classifier = analytics.Classifier{
			Threshold:      cfg.EngagementThreshold,
			RoundedCompare: cfg.RoundedRatioCompare,
		}
	}

	return &Model{
		state:      state,
		classifier: classifier,
		keys:       defaultKeyMap(),
		viewport:   viewport.New(0, 0),
	}
}

// Init initializes the engagement tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the engagement tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) sync() {
	report := m.state.Report()
	if report == m.report {
		return
	}
	m.report = report
	m.byName = nil
	if report != nil {
		m.byName = make(map[string]models.ProtocolSummary, len(report.Protocols))
		for _, p := range report.Protocols {
			m.byName[p.Namespace] = p
		}
	}
	m.viewport.GotoTop()
}

// SetSize sets the available size for the engagement tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
