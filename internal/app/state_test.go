package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.Phase() != models.PhaseIdle {
		t.Errorf("Phase = %v, want idle", s.Phase())
	}
	if s.Report() != nil {
		t.Error("Report should be nil before the first load")
	}
	if loadedAt, _ := s.LastLoad(); !loadedAt.IsZero() {
		t.Error("LastLoad should be zero before the first load")
	}
}

func TestState_LoadTransitions(t *testing.T) {
	s := NewState()
	report := &models.Report{RecordCount: 3}
	now := time.Now()

	s.SetLoadState(models.Loading{StartedAt: now})
	if s.Phase() != models.PhaseLoading {
		t.Errorf("Phase = %v, want loading", s.Phase())
	}
	if s.Report() != nil {
		t.Error("first load should have no report to show")
	}

	ready := models.Ready{Report: report, LoadedAt: now.Add(time.Second), Duration: time.Second}
	s.SetLoadState(ready)
	s.SetLoadState(ready)

	if s.Report() != report {
		t.Error("Report should return the ready report")
	}
	if s.SuccessfulLoads() != 1 {
		t.Errorf("SuccessfulLoads = %d, want 1 for a repeated state", s.SuccessfulLoads())
	}
	loadedAt, d := s.LastLoad()
	if !loadedAt.Equal(ready.LoadedAt) || d != time.Second {
		t.Errorf("LastLoad = %v, %v", loadedAt, d)
	}

	s.SetLoadState(models.Loading{StartedAt: now, Previous: report})
	if s.Report() != report {
		t.Error("reload should keep showing the previous report")
	}

	s.SetLoadState(models.Failed{Err: models.NewFetchError("x", errors.New("boom"))})
	if s.Report() != nil {
		t.Error("failed state should not expose a report")
	}
	if loadedAt, _ := s.LastLoad(); loadedAt.IsZero() {
		t.Error("LastLoad should survive a failure")
	}

	s.SetLoadState(nil)
	if s.Phase() != models.PhaseFailed {
		t.Error("nil state should be ignored")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "Test info", time.Minute)
	if len(s.GetNotifications()) != 1 {
		t.Error("Should have 1 notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Should have 0 notifications after remove")
	}

	s.AddNotification(NotificationError, "Expired", time.Nanosecond)
	time.Sleep(time.Millisecond)
	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification should be hidden")
	}
	s.ClearExpiredNotifications()

	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "msg", 0)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("notifications = %d, want %d", got, maxNotifications)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should remove everything")
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading a")
	s.SetLoadingNotification("Loading b")

	notes := s.GetNotifications()
	if len(notes) != 1 {
		t.Fatalf("loading notification should be unique, got %d", len(notes))
	}
	if notes[0].Message != "Loading b" || notes[0].Type != NotificationLoading {
		t.Errorf("notification = %+v", notes[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearLoadingNotification should remove it")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := map[NotificationType]string{
		NotificationSuccess:  "success",
		NotificationError:    "error",
		NotificationWarning:  "warning",
		NotificationInfo:     "info",
		NotificationLoading:  "loading",
		NotificationType(99): "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
