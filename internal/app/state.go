// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is shared between the root model and the tabs. The load state is
// written only from service events; tabs read it when rendering.
type State struct {
	mu sync.RWMutex

	load     models.LoadState
	loadedAt time.Time
	duration time.Duration
	loads    int

	notifications   []Notification
	notificationSeq int
}

// NewState returns a state in the Idle phase.
func NewState() *State {
	return &State{
		load:          models.Idle{},
		notifications: make([]Notification, 0),
	}
}

// SetLoadState records a load state transition. The same Ready state may be
// delivered twice, once as an event and once as a load result; it is counted
// once.
func (s *State) SetLoadState(ls models.LoadState) {
	if ls == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.load = ls
	if ready, ok := ls.(models.Ready); ok && !ready.LoadedAt.Equal(s.loadedAt) {
		s.loadedAt = ready.LoadedAt
		s.duration = ready.Duration
		s.loads++
	}
}

// LoadState returns the current load state.
func (s *State) LoadState() models.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load
}

// Phase returns the phase of the current load state.
func (s *State) Phase() models.Phase {
	return s.LoadState().Phase()
}

// Report returns the report to display: the ready report, or the previous
// one while a reload is in flight. It is nil when idle or failed.
func (s *State) Report() *models.Report {
	return models.LastReport(s.LoadState())
}

// LastLoad returns when the last successful load finished and how long it
// took. The time is zero before the first successful load.
func (s *State) LastLoad() (time.Time, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, s.duration
}

// SuccessfulLoads returns how many loads reached Ready.
func (s *State) SuccessfulLoads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := fmt.Sprintf("n-%d", s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the newest notifications
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
