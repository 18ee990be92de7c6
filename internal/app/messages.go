package app

import (
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// ReloadMsg requests a new load of the data source.
type ReloadMsg struct{}

// LoadResultMsg carries the outcome of a load started by the UI.
type LoadResultMsg struct {
	Report *models.Report
	Err    error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// LoadStateChangedMsg tells tabs that the shared load state moved.
type LoadStateChangedMsg struct {
	State models.LoadState
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
