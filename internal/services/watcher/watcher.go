// Package watcher reports debounced changes to a single file.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/namespace-activity-tui/internal/logger"
)

// DefaultDebounce coalesces bursts of writes, such as an editor saving a file in
// several steps.
const DefaultDebounce = 100 * time.Millisecond

// EventType identifies the kind of watcher event.
type EventType int

const (
	// EventChanged means the file was written, created or replaced.
	EventChanged EventType = iota
	// EventError means the underlying watcher reported an error.
	EventError
)

// Event is emitted on the watcher's channel.
type Event struct {
	Type  EventType
	Path  string
	Error error
}

// Watcher watches the parent directory of a file and filters events by name, so
// files replaced by rename are still seen.
type Watcher struct {
	mu            sync.Mutex
	path          string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// New starts watching path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory (to catch file creation/replacement)
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		debounce:  debounce,
		watcher:   fw,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of change and error events.
func (w *Watcher) Events() <-chan Event {
	return w.eventChan
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	name := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != name {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendEvent(Event{Type: EventError, Path: w.path, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.sendEvent(Event{Type: EventChanged, Path: w.path})
	})
}

// sendEvent sends an event to the event channel non-blocking.
func (w *Watcher) sendEvent(event Event) {
	select {
	case <-w.stopChan:
		return
	default:
	}

	select {
	case w.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-w.eventChan:
		default:
		}
		select {
		case w.eventChan <- event:
		default:
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)

		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}
