// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/namespace-activity-tui/internal/analytics"
	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/logger"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/pipeline"
	"github.com/j-veylop/namespace-activity-tui/internal/services/watcher"
	"github.com/j-veylop/namespace-activity-tui/internal/source"
)

// ErrLoadInFlight is returned by Load while another load is running.
var ErrLoadInFlight = errors.New("a load is already in progress")

type (
	// LoadStateEvent is emitted on every load state transition.
	LoadStateEvent struct {
		State models.LoadState
	}

	// SourceChangedEvent is emitted when the watched source file changes on
	// disk. A reload follows.
	SourceChangedEvent struct {
		Path string
	}

	// ErrorEvent is emitted when an error occurs outside of a load.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (LoadStateEvent) isServiceEvent()     {}
func (SourceChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()         {}

// Manager owns the load lifecycle and routes events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	src         source.Source
	classifier  analytics.Classifier
	watcher     *watcher.Watcher
	state       models.LoadState
	lastReport  *models.Report
	subscribers []chan<- ServiceEvent
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	now func() time.Time
}

// NewManager creates a manager for the configured data source. Watching is
// best effort: a source that cannot be watched is still loadable.
func NewManager(cfg *config.Config) (*Manager, error) {
	src, err := source.New(cfg.DataSource, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	return newManager(cfg, src), nil
}

func newManager(cfg *config.Config, src source.Source) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		cfg: cfg,
		src: src,
		classifier: analytics.Classifier{
			Threshold:      cfg.EngagementThreshold,
			RoundedCompare: cfg.RoundedRatioCompare,
		},
		state:  models.Idle{},
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
	}

	if cfg.WatchSource {
		if path := src.WatchPath(); path != "" {
			w, err := watcher.New(path, watcher.DefaultDebounce)
			if err != nil {
				logger.Warn("source will not be watched", "path", path, "error", err)
			} else {
				m.watcher = w
				m.wg.Add(1)
				go m.routeEvents()
			}
		}
	}

	return m
}

// routeEvents turns watcher events into reloads and service events.
func (m *Manager) routeEvents() {
	defer m.wg.Done()
	for {
		select {
		case event := <-m.watcher.Events():
			m.handleWatchEvent(event)

		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) handleWatchEvent(event watcher.Event) {
	switch event.Type {
	case watcher.EventChanged:
		logger.Info("source changed", "path", event.Path)
		m.broadcast(SourceChangedEvent{Path: event.Path})

		if _, err := m.Load(m.ctx); errors.Is(err, ErrLoadInFlight) {
			logger.Debug("reload skipped, load in flight", "path", event.Path)
		}

	case watcher.EventError:
		logger.Warn("watcher error", "path", event.Path, "error", event.Error)
		m.broadcast(ErrorEvent{
			Service: "watcher",
			Error:   event.Error,
		})
	}
}

// Load fetches and aggregates the source once, moving the state through
// Loading to Ready or Failed. It returns ErrLoadInFlight without changing the
// state when a load is already running. Load failures are *models.LoadError.
func (m *Manager) Load(ctx context.Context) (*models.Report, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, errors.New("manager is closed")
	}
	loading, ok := models.BeginLoad(m.state, m.now())
	if !ok {
		m.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	m.state = loading
	previous := m.lastReport
	m.mu.Unlock()

	m.broadcast(LoadStateEvent{State: loading})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.ctx, cancel)
	defer stop()

	report, err := pipeline.Run(ctx, m.src, m.classifier, m.cfg.FetchTimeout)
	finished := m.now()

	if err != nil {
		loadErr := asLoadError(err, m.src.Describe())
		failed := models.Failed{Err: loadErr, FailedAt: finished}

		m.mu.Lock()
		m.state = failed
		m.mu.Unlock()

		logger.Error("load failed",
			"source", loadErr.Source,
			"kind", loadErr.Kind.String(),
			"error", loadErr.Err,
		)
		m.broadcast(LoadStateEvent{State: failed})
		m.notifyFailure(loadErr)
		return nil, loadErr
	}

	ready := models.Ready{
		Report:   report,
		LoadedAt: finished,
		Duration: finished.Sub(loading.StartedAt),
	}

	m.mu.Lock()
	m.state = ready
	m.lastReport = report
	m.mu.Unlock()

	logger.Info("load complete",
		"source", report.Source,
		"records", report.RecordCount,
		"protocols", len(report.Protocols),
		"days", len(report.Daily),
		"duration", ready.Duration,
	)
	m.broadcast(LoadStateEvent{State: ready})
	m.notifyNewHighConcentration(previous, report)
	return report, nil
}

// asLoadError classifies err. Anything that is not already a LoadError failed
// before a table was available, so it counts as a fetch failure.
func asLoadError(err error, source string) *models.LoadError {
	var le *models.LoadError
	if errors.As(err, &le) {
		return le
	}
	return models.NewFetchError(source, err)
}

func (m *Manager) notifyFailure(err *models.LoadError) {
	if !m.cfg.DesktopNotifications {
		return
	}
	title := fmt.Sprintf("Namespace activity: %s error", err.Kind)
	if nerr := notify(title, err.Error()); nerr != nil {
		logger.Warn("notification failed", "error", nerr)
	}
}

// notifyNewHighConcentration notifies about namespaces that became highly
// concentrated since the previous successful load.
func (m *Manager) notifyNewHighConcentration(previous, current *models.Report) {
	if !m.cfg.DesktopNotifications || previous == nil {
		return
	}

	added := newHighConcentration(previous, current)
	if len(added) == 0 {
		return
	}

	title := fmt.Sprintf("%d new high-concentration namespace(s)", len(added))
	body := strings.Join(added, ", ")
	if err := notify(title, body); err != nil {
		logger.Warn("notification failed", "error", err)
	}
}

// newHighConcentration lists namespaces classified high in current but not in
// previous, in ranking order.
func newHighConcentration(previous, current *models.Report) []string {
	seen := make(map[string]bool, len(previous.HighConcentrationNamespaces))
	for _, ns := range previous.HighConcentrationNamespaces {
		seen[ns] = true
	}

	var added []string
	for _, ns := range current.HighConcentrationNamespaces {
		if !seen[ns] {
			added = append(added, ns)
		}
	}
	return added
}

// State returns the current load state.
func (m *Manager) State() models.LoadState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LastReport returns the report of the most recent successful load, or nil.
func (m *Manager) LastReport() *models.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReport
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// SourceDescription returns a human-readable source location.
func (m *Manager) SourceDescription() string {
	return m.src.Describe()
}

// Watching reports whether source changes trigger reloads.
func (m *Manager) Watching() bool {
	return m.watcher != nil
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	if m.closed {
		close(ch)
	} else {
		m.subscribers = append(m.subscribers, ch)
	}
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event. It yields nil
// once the channel is closed.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close stops watching, cancels an in-flight load and closes all subscriber
// channels.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	m.cancel()

	var err error
	if m.watcher != nil {
		err = m.watcher.Close()
	}
	m.wg.Wait()
	return err
}
