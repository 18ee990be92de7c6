// Package protocols provides the per-namespace ranking tab.
package protocols

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/namespace-activity-tui/internal/analytics"
	"github.com/j-veylop/namespace-activity-tui/internal/app"
	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// SortMode selects the row order of the table.
type SortMode int

const (
	// SortByTxs orders by total transactions, descending.
	SortByTxs SortMode = iota
	// SortByTxPerUser orders by tx-per-user, descending, with undefined ratios last.
	SortByTxPerUser
)

// String returns the label shown in the tab subtitle.
func (s SortMode) String() string {
	if s == SortByTxPerUser {
		return "tx/user"
	}
	return "total txs"
}

// keyMap defines the key bindings specific to the protocols tab.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Sort     key.Binding
}

// defaultKeyMap returns the default key bindings for the protocols tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
		),
	}
}

// Model represents the protocols tab state.
type Model struct {
	state      *app.State
	config     *config.Config
	classifier analytics.Classifier
	keys       keyMap
	viewport   viewport.Model

	report   *models.Report
	rows     []models.ProtocolSummary
	sort     SortMode
	selected int

	width  int
	height int
}

// New creates a new protocols model.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:      state,
		config:     cfg,
		classifier: classifierFor(cfg),
		keys:       defaultKeyMap(),
		viewport:   viewport.New(0, 0),
	}
}

func classifierFor(cfg *config.Config) analytics.Classifier {
	if cfg == nil || cfg.EngagementThreshold <= 0 {
		return analytics.DefaultClassifier()
	}
	return analytics.Classifier{
		Threshold:      cfg.EngagementThreshold,
		RoundedCompare: cfg.RoundedRatioCompare,
	}
}

// Init initializes the protocols tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the protocols tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.rows) == 0 {
		return m, nil
	}

	page := max(m.viewport.Height, 1)
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.selectRow(m.selected - 1)
	case key.Matches(keyMsg, m.keys.Down):
		m.selectRow(m.selected + 1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.selectRow(m.selected - page)
	case key.Matches(keyMsg, m.keys.PageDown):
		m.selectRow(m.selected + page)
	case key.Matches(keyMsg, m.keys.Top):
		m.selectRow(0)
	case key.Matches(keyMsg, m.keys.Bottom):
		m.selectRow(len(m.rows) - 1)
	case key.Matches(keyMsg, m.keys.Sort):
		m.toggleSort()
	}

	return m, nil
}

// sync rebuilds the rows when the shared state holds a different report.
func (m *Model) sync() {
	report := m.state.Report()
	if report == m.report {
		return
	}
	m.report = report
	m.rebuild()
}

// rebuild orders the rows for the current sort mode, keeping the selected
// namespace selected when it is still present.
func (m *Model) rebuild() {
	var current string
	if m.selected < len(m.rows) {
		current = m.rows[m.selected].Namespace
	}

	m.rows = nil
	if m.report != nil {
		if m.sort == SortByTxPerUser {
			m.rows = analytics.RankByTxPerUser(m.report.Protocols)
		} else {
			m.rows = m.report.Protocols
		}
	}

	idx := 0
	for i, p := range m.rows {
		if p.Namespace == current {
			idx = i
			break
		}
	}
	m.selectRow(idx)
}

func (m *Model) toggleSort() {
	if m.sort == SortByTxs {
		m.sort = SortByTxPerUser
	} else {
		m.sort = SortByTxs
	}
	m.rebuild()
}

// selectRow clamps i to the rows and scrolls it into view.
func (m *Model) selectRow(i int) {
	m.selected = max(0, min(i, len(m.rows)-1))

	if m.viewport.Height <= 0 {
		return
	}
	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

// Selected returns the selected protocol, if any.
func (m *Model) Selected() (models.ProtocolSummary, bool) {
	m.sync()
	if len(m.rows) == 0 {
		return models.ProtocolSummary{}, false
	}
	return m.rows[m.selected], true
}

// SetSize sets the available size for the protocols tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Sort}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown},
		{m.keys.Top, m.keys.Bottom, m.keys.Sort},
	}
}
