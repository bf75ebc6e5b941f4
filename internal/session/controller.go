// Package session gates the automated pipeline per user: enable/disable
// state, session lifecycle, typing timers and activity counters.
package session

import (
	"log"
	"sync"
	"time"
)

// Settings holds the controller knobs.
type Settings struct {
	AutoEnableNewUsers   bool
	EnableAIByDefault    bool
	SessionTimeout       time.Duration
	TypingTimeout        time.Duration
	MaxMessagesPerMinute int
}

// DefaultSettings mirrors the production defaults.
func DefaultSettings() Settings {
	return Settings{
		AutoEnableNewUsers:   true,
		EnableAIByDefault:    true,
		SessionTimeout:       30 * time.Minute,
		TypingTimeout:        30 * time.Second,
		MaxMessagesPerMinute: 10,
	}
}

// Session is the per-user activity state. Sessions are never deleted,
// only toggled between active and inactive, so per-user statistics
// survive for the process lifetime.
type Session struct {
	StartedAt      time.Time
	LastActivity   time.Time
	EndedAt        time.Time
	MessageCount   int
	AIResponses    int
	Active         bool
	TypingStarted  time.Time // zero means no running timer
	TypingTimeouts int
}

// Info is a session snapshot with derived fields for the admin surface.
type Info struct {
	Session
	DurationMinutes   int
	InactiveMinutes   int
	MessagesPerMinute float64
}

// Stats is the controller-wide counter snapshot.
type Stats struct {
	TotalSessions        int
	ActiveSessions       int
	InactiveSessions     int
	AIResponses          int
	ManagerInterventions int
	EnabledUsers         int
	DisabledUsers        int
}

// Controller tracks every user's gate state. Safe for concurrent use
// from independent message-handling flows.
type Controller struct {
	mu       sync.Mutex
	settings Settings
	now      func() time.Time

	enabled   map[int64]struct{}
	disabled  map[int64]struct{}
	sessions  map[int64]*Session
	overrides map[int64][]int64 // manager id -> users they toggled

	totalSessions int
	activeCount   int
	inactiveCount int
	aiResponses   int
	interventions int
}

// New builds a controller with the real clock.
func New(settings Settings) *Controller {
	return NewWithClock(settings, time.Now)
}

// NewWithClock injects the clock; tests drive time through it.
func NewWithClock(settings Settings, clock func() time.Time) *Controller {
	return &Controller{
		settings:  settings,
		now:       clock,
		enabled:   make(map[int64]struct{}),
		disabled:  make(map[int64]struct{}),
		sessions:  make(map[int64]*Session),
		overrides: make(map[int64][]int64),
	}
}

// IsEnabled reports whether the bot answers this user. A user never seen
// before is implicitly enabled when AutoEnableNewUsers is on.
func (c *Controller) IsEnabled(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, off := c.disabled[userID]; off {
		return false
	}
	if _, on := c.enabled[userID]; on {
		return true
	}
	if c.settings.AutoEnableNewUsers {
		c.enableLocked(userID, 0)
		return true
	}
	return false
}

// Enable turns the bot on for a user. A non-zero managerID records the
// operator override and counts an intervention.
func (c *Controller) Enable(userID, managerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enableLocked(userID, managerID)
}

func (c *Controller) enableLocked(userID, managerID int64) {
	delete(c.disabled, userID)
	c.enabled[userID] = struct{}{}
	c.recordOverrideLocked(userID, managerID)
	c.touchSessionLocked(userID)
	log.Printf("✅ bot enabled for user %d", userID)
}

// Disable turns the bot off for a user and deactivates their session.
func (c *Controller) Disable(userID, managerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.enabled, userID)
	c.disabled[userID] = struct{}{}
	c.recordOverrideLocked(userID, managerID)

	if s, ok := c.sessions[userID]; ok && s.Active {
		c.deactivateLocked(s)
	}
	log.Printf("⛔ bot disabled for user %d", userID)
}

// Toggle flips the user's enabled state and reports the new value.
func (c *Controller) Toggle(userID, managerID int64) bool {
	if c.IsEnabled(userID) {
		c.Disable(userID, managerID)
		return false
	}
	c.Enable(userID, managerID)
	return true
}

func (c *Controller) recordOverrideLocked(userID, managerID int64) {
	if managerID == 0 {
		return
	}
	for _, u := range c.overrides[managerID] {
		if u == userID {
			c.interventions++
			return
		}
	}
	c.overrides[managerID] = append(c.overrides[managerID], userID)
	c.interventions++
}

// touchSessionLocked creates the session or refreshes activity, resuming
// an inactive session in place.
func (c *Controller) touchSessionLocked(userID int64) *Session {
	now := c.now()
	s, ok := c.sessions[userID]
	if !ok {
		s = &Session{StartedAt: now, LastActivity: now, Active: true}
		c.sessions[userID] = s
		c.totalSessions++
		c.activeCount++
		return s
	}

	s.LastActivity = now
	if !s.Active {
		s.Active = true
		s.StartedAt = now
		s.EndedAt = time.Time{}
		c.activeCount++
		c.inactiveCount--
	}
	return s
}

func (c *Controller) deactivateLocked(s *Session) {
	s.Active = false
	s.EndedAt = c.now()
	c.activeCount--
	c.inactiveCount++
}

// RecordMessage notes an inbound user message, creating or resuming the
// session as needed.
func (c *Controller) RecordMessage(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.touchSessionLocked(userID)
	s.MessageCount++
	s.LastActivity = c.now()
}

// RecordAIResponse notes that the automated layer answered this user.
func (c *Controller) RecordAIResponse(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[userID]; ok {
		s.AIResponses++
		c.aiResponses++
	}
}

// StartTyping starts the user's typing timer.
func (c *Controller) StartTyping(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[userID]; ok {
		s.TypingStarted = c.now()
	}
}

// StopTyping clears the user's typing timer.
func (c *Controller) StopTyping(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[userID]; ok {
		s.TypingStarted = time.Time{}
	}
}

// CheckTypingTimeout reports whether the user has been typing past the
// configured threshold. A hit bumps the timeout counter and clears the
// timer, so an immediate second call returns false.
func (c *Controller) CheckTypingTimeout(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[userID]
	if !ok || s.TypingStarted.IsZero() {
		return false
	}
	if c.now().Sub(s.TypingStarted) <= c.settings.TypingTimeout {
		return false
	}

	s.TypingTimeouts++
	s.TypingStarted = time.Time{}
	return true
}

// CheckRateLimit is the message-cadence policy hook. It currently always
// permits; MaxMessagesPerMinute is carried in Settings but not enforced.
// TODO: enforce the per-minute ceiling once product decides the behavior
// for over-limit messages.
func (c *Controller) CheckRateLimit(userID int64) bool {
	return true
}

// CleanupInactive deactivates every active session idle past the session
// timeout and returns how many were swept. Meant to run periodically,
// not per message.
func (c *Controller) CleanupInactive() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	swept := 0
	for _, s := range c.sessions {
		if s.Active && now.Sub(s.LastActivity) > c.settings.SessionTimeout {
			c.deactivateLocked(s)
			swept++
		}
	}
	if swept > 0 {
		log.Printf("🧹 swept %d inactive sessions", swept)
	}
	return swept
}

// SessionInfo returns a snapshot of the user's session with derived
// duration and cadence fields.
func (c *Controller) SessionInfo(userID int64) (Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[userID]
	if !ok {
		return Info{}, false
	}

	now := c.now()
	duration := int(now.Sub(s.StartedAt).Minutes())
	inactive := int(now.Sub(s.LastActivity).Minutes())
	perMinute := float64(s.MessageCount)
	if duration > 1 {
		perMinute = float64(s.MessageCount) / float64(duration)
	}

	return Info{
		Session:           *s,
		DurationMinutes:   duration,
		InactiveMinutes:   inactive,
		MessagesPerMinute: perMinute,
	}, true
}

// ActiveUsers lists users with an active session, in no particular order.
func (c *Controller) ActiveUsers() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var users []int64
	for id, s := range c.sessions {
		if s.Active {
			users = append(users, id)
		}
	}
	return users
}

// Stats returns the controller-wide counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		TotalSessions:        c.totalSessions,
		ActiveSessions:       c.activeCount,
		InactiveSessions:     c.inactiveCount,
		AIResponses:          c.aiResponses,
		ManagerInterventions: c.interventions,
		EnabledUsers:         len(c.enabled),
		DisabledUsers:        len(c.disabled),
	}
}

// UsersByManager lists the users a manager has toggled.
func (c *Controller) UsersByManager(managerID int64) []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.overrides[managerID]...)
}
