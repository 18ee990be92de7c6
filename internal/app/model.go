// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/services"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabProtocols is the ID for the per-namespace table.
	TabProtocols TabID = iota
	// TabDaily is the ID for the daily trend tab.
	TabDaily
	// TabEngagement is the ID for the engagement breakdown tab.
	TabEngagement
	// TabInfo is the ID for the info tab.
	TabInfo
)

var tabNames = []string{"Protocols", "Daily", "Engagement", "Info"}

// String returns the string representation of the TabID.
func (t TabID) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "protocols")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "daily")),
		Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "engagement")),
		Tab4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info")),
		NextTab: key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab")),
		Reload:  key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.Reload, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	s.Success = lipgloss.NewStyle().Foreground(success)
	s.Warning = lipgloss.NewStyle().Foreground(warning)

	return s
}

// chromeHeight is the number of rows used by the navbar and footer.
const chromeHeight = 5

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab

	// Shared state
	state    *State
	services *services.Manager
	commands *Commands
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner components.LoadingSpinner

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil, in which
// case nothing is ever loaded.
func NewModel(mgr *services.Manager) *Model {
	source := "source"
	if mgr != nil {
		source = mgr.SourceDescription()
	}

	return &Model{
		activeTab: TabProtocols,
		tabs:      make([]Tab, len(tabNames)), // set by SetTabs
		state:     NewState(),
		services:  mgr,
		commands:  NewCommands(mgr),
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   components.NewSpinner(source),
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetCommands returns the commands helper.
func (m *Model) GetCommands() *Commands {
	return m.commands
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// Init subscribes to the manager and starts the first load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick(),
		defaultTickCmd(),
	}

	if m.services != nil {
		m.state.SetLoadState(m.services.State())
		cmds = append(cmds, subscribeToServicesCmd(m.services), loadCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateTabSizes()

	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case ReloadMsg:
		cmds = append(cmds, m.commands.Reload())
	case LoadResultMsg:
		cmds = append(cmds, m.handleLoadResult(msg))
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case TabSwitchMsg:
		m.switchTab(msg.Tab)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.LoadStateEvent:
		m.state.SetLoadState(e.State)
		if e.State.Phase() == models.PhaseLoading {
			m.state.SetLoadingNotification(fmt.Sprintf("Loading %s...", m.sourceName()))
		} else {
			m.state.ClearLoadingNotification()
		}
		return func() tea.Msg { return LoadStateChangedMsg{State: e.State} }

	case services.SourceChangedEvent:
		return notifyInfoCmd("Source changed, reloading")

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

func (m *Model) handleLoadResult(msg LoadResultMsg) tea.Cmd {
	if m.services != nil {
		m.state.SetLoadState(m.services.State())
	}

	switch {
	case errors.Is(msg.Err, services.ErrLoadInFlight):
		return notifyInfoCmd("A load is already in progress")
	case msg.Err != nil:
		m.state.ClearLoadingNotification()
		return notifyErrorCmd(msg.Err.Error())
	case msg.Report.IsEmpty():
		return notifyWarningCmd("Source has no records")
	default:
		return notifySuccessCmd(fmt.Sprintf("Loaded %d records", msg.Report.RecordCount))
	}
}

func (m *Model) switchTab(id TabID) {
	if id < 0 || int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-chromeHeight)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

// handleKeyMsg handles global keys. It reports whether the key was consumed;
// other keys go to the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.Escape) && m.showHelp:
		m.showHelp = false
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabProtocols)
		return nil, true

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabDaily)
		return nil, true

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabEngagement)
		return nil, true

	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabInfo)
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp && len(m.tabs) > 0 {
			m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
		}
		return nil, true

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp && len(m.tabs) > 0 {
			m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
		}
		return nil, true

	case key.Matches(msg, m.keymap.Reload):
		return m.commands.Reload(), true
	}

	return nil, m.showHelp
}

func (m *Model) sourceName() string {
	if m.services == nil {
		return "source"
	}
	return m.services.SourceDescription()
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return m.overlayToasts(mainView, toasts)
	}

	return mainView
}

// renderContent shows the active tab once a report is available. The info
// tab is always shown since it describes the source itself.
func (m *Model) renderContent() string {
	tab := m.activeTabModel()
	if tab == nil {
		return m.renderPlaceholder()
	}
	if m.state.Report() == nil && m.activeTab != TabInfo {
		return m.renderStatus()
	}
	return tab.View()
}

func (m *Model) activeTabModel() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

// renderStatus renders the load state when there is no report to show.
func (m *Model) renderStatus() string {
	width := max(m.width, 20)
	height := max(m.height-chromeHeight, 3)

	var content string
	switch st := m.state.LoadState().(type) {
	case models.Loading:
		return components.RenderSpinnerCentered(m.spinner, st.StartedAt, time.Now(), width, height)

	case models.Failed:
		content = m.renderFailure(st, width)

	default:
		content = lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("No data loaded"),
			"",
			m.styles.Subtle.Render(fmt.Sprintf("Press r to load %s", m.sourceName())),
		)
	}

	return styles.CenterBoth(content, width, height)
}

func (m *Model) renderFailure(st models.Failed, width int) string {
	title := "Load failed"
	message := "unknown error"
	source := m.sourceName()
	if st.Err != nil {
		switch st.Err.Kind {
		case models.ErrorKindFetch:
			title = "Fetch error"
		case models.ErrorKindParse:
			title = "Parse error"
		}
		if st.Err.Err != nil {
			message = st.Err.Err.Error()
		}
		source = st.Err.Source
	}

	wrap := lipgloss.NewStyle().Width(min(width-4, 80)).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Error.Bold(true).Render(title),
		m.styles.Subtle.Render(source),
		"",
		wrap.Render(m.styles.Error.Render(message)),
		"",
		m.styles.Subtle.Render("Press r to retry"),
	)
}

func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, len(m.tabs))
	for i := range m.tabs {
		name := TabID(i).String()
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

// renderFooter shows the load phase and the short help.
func (m *Model) renderFooter() string {
	phase := m.state.Phase()
	var status string
	switch phase {
	case models.PhaseReady:
		status = m.styles.Success.Render("● " + phase.String())
	case models.PhaseFailed:
		status = m.styles.Error.Render("● " + phase.String())
	case models.PhaseLoading:
		status = m.styles.Warning.Render(m.spinner.View() + " " + phase.String())
	default:
		status = m.styles.Subtle.Render("○ " + phase.String())
	}

	bindings := m.keymap.ShortHelp()
	if tab := m.activeTabModel(); tab != nil {
		bindings = append(tab.ShortHelp(), bindings...)
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	help := strings.Join(parts, styles.HelpSeparatorStyle.Render(" • "))

	return m.styles.Help.Render(ansi.Truncate(status+"  "+help, max(m.width-2, 0), "…"))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		message := n.Message
		if m.width > 0 {
			message = ansi.Truncate(message, max(m.width/2, 20), "…")
		}
		content := style.Render(fmt.Sprintf("%s %s", prefix, message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	startX := max(m.width-lipgloss.Width(toastStack)-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-mainLineWidth) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	lines := []string{
		m.styles.Title.Render("Keyboard Shortcuts"),
		"",
		m.styles.Highlight.Render("Navigation"),
		"  1-4        Switch tabs",
		"  Tab        Next tab",
		"  Shift+Tab  Previous tab",
		"",
		m.styles.Highlight.Render("Actions"),
		"  r          Reload data",
		"  ?          Toggle help",
		"  q/Ctrl+C   Quit",
		"",
	}

	if tab := m.activeTabModel(); tab != nil {
		if tabHelp := tab.ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.activeTab)))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.activeTab,
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
