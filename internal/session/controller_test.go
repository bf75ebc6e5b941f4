package session

import (
	"testing"
	"time"
)

func testController() (*Controller, *time.Time) {
	now := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(DefaultSettings(), func() time.Time { return now })
	return c, &now
}

func TestLifecycle(t *testing.T) {
	c, _ := testController()

	c.RecordMessage(42)

	info, ok := c.SessionInfo(42)
	if !ok {
		t.Fatal("session should exist after RecordMessage")
	}
	if !info.Active || info.MessageCount != 1 {
		t.Errorf("fresh session = %+v, want active with 1 message", info.Session)
	}

	c.Disable(42, 0)
	if c.IsEnabled(42) {
		t.Error("IsEnabled after Disable = true")
	}
	info, _ = c.SessionInfo(42)
	if info.Active {
		t.Error("session should be inactive after Disable")
	}

	c.Enable(42, 0)
	if !c.IsEnabled(42) {
		t.Error("IsEnabled after Enable = false")
	}
	info, _ = c.SessionInfo(42)
	if !info.Active {
		t.Error("session should be active again after Enable")
	}

	stats := c.Stats()
	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1 (sessions toggle, never recreate)", stats.TotalSessions)
	}
	if stats.ActiveSessions != 1 || stats.InactiveSessions != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAutoEnableNewUsers(t *testing.T) {
	c, _ := testController()
	if !c.IsEnabled(7) {
		t.Error("new user should be auto-enabled")
	}

	settings := DefaultSettings()
	settings.AutoEnableNewUsers = false
	strict := NewWithClock(settings, time.Now)
	if strict.IsEnabled(7) {
		t.Error("new user should stay disabled without auto-enable")
	}
}

func TestToggle(t *testing.T) {
	c, _ := testController()

	if on := c.Toggle(42, 99); on {
		t.Error("first toggle of an auto-enabled user should disable")
	}
	if on := c.Toggle(42, 99); !on {
		t.Error("second toggle should enable")
	}
	if got := c.Stats().ManagerInterventions; got != 2 {
		t.Errorf("interventions = %d, want 2", got)
	}
	users := c.UsersByManager(99)
	if len(users) != 1 || users[0] != 42 {
		t.Errorf("UsersByManager = %v", users)
	}
}

func TestMessageCountAcrossResume(t *testing.T) {
	c, now := testController()

	c.RecordMessage(42)
	c.RecordMessage(42)
	c.Disable(42, 0)
	c.Enable(42, 0)
	*now = now.Add(time.Minute)
	c.RecordMessage(42)

	info, _ := c.SessionInfo(42)
	if info.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3 (counter survives resume)", info.MessageCount)
	}
}

func TestTypingTimeout(t *testing.T) {
	c, now := testController()

	c.RecordMessage(42)
	c.StartTyping(42)

	if c.CheckTypingTimeout(42) {
		t.Error("timeout immediately after StartTyping")
	}

	*now = now.Add(31 * time.Second)
	if !c.CheckTypingTimeout(42) {
		t.Error("no timeout after exceeding the threshold")
	}
	// Timer was cleared by the hit.
	if c.CheckTypingTimeout(42) {
		t.Error("second immediate check should be false")
	}

	info, _ := c.SessionInfo(42)
	if info.TypingTimeouts != 1 {
		t.Errorf("TypingTimeouts = %d, want 1", info.TypingTimeouts)
	}
}

func TestTypingStopClearsTimer(t *testing.T) {
	c, now := testController()

	c.RecordMessage(42)
	c.StartTyping(42)
	c.StopTyping(42)
	*now = now.Add(time.Hour)

	if c.CheckTypingTimeout(42) {
		t.Error("stopped timer should never time out")
	}
}

func TestTypingUnknownUser(t *testing.T) {
	c, _ := testController()
	if c.CheckTypingTimeout(999) {
		t.Error("unknown user should not time out")
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := testController()
	c.RecordMessage(42)
	for i := 0; i < 100; i++ {
		if !c.CheckRateLimit(42) {
			t.Fatal("rate limit hook must always permit")
		}
	}
}

func TestCleanupInactive(t *testing.T) {
	c, now := testController()

	c.RecordMessage(1)
	c.RecordMessage(2)

	*now = now.Add(10 * time.Minute)
	c.RecordMessage(2) // keeps user 2 fresh

	*now = now.Add(25 * time.Minute) // user 1 idle 35m, user 2 idle 25m
	if swept := c.CleanupInactive(); swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	info1, _ := c.SessionInfo(1)
	info2, _ := c.SessionInfo(2)
	if info1.Active {
		t.Error("user 1 should be inactive")
	}
	if !info2.Active {
		t.Error("user 2 should stay active")
	}

	stats := c.Stats()
	if stats.ActiveSessions != 1 || stats.InactiveSessions != 1 {
		t.Errorf("stats = %+v", stats)
	}

	// The swept session resumes on the next message.
	c.RecordMessage(1)
	info1, _ = c.SessionInfo(1)
	if !info1.Active {
		t.Error("swept session should resume on new message")
	}
	if got := c.Stats().TotalSessions; got != 2 {
		t.Errorf("TotalSessions = %d, want 2", got)
	}
}

func TestActiveUsers(t *testing.T) {
	c, _ := testController()

	c.RecordMessage(1)
	c.RecordMessage(2)
	c.Disable(2, 0)

	users := c.ActiveUsers()
	if len(users) != 1 || users[0] != 1 {
		t.Errorf("ActiveUsers = %v, want [1]", users)
	}
}

func TestRecordAIResponse(t *testing.T) {
	c, _ := testController()

	c.RecordAIResponse(42) // no session yet: ignored
	if got := c.Stats().AIResponses; got != 0 {
		t.Errorf("AIResponses without session = %d, want 0", got)
	}

	c.RecordMessage(42)
	c.RecordAIResponse(42)
	c.RecordAIResponse(42)

	info, _ := c.SessionInfo(42)
	if info.AIResponses != 2 {
		t.Errorf("session AIResponses = %d, want 2", info.AIResponses)
	}
	if got := c.Stats().AIResponses; got != 2 {
		t.Errorf("global AIResponses = %d, want 2", got)
	}
}
