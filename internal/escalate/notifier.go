package escalate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/vatastudio/concierge/internal/textutil"
)

// UserInfo identifies the user a manager is paged about.
type UserInfo struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// ContextMessage is one history entry attached to a page.
type ContextMessage struct {
	Text  string
	IsBot bool
}

// Sink delivers a rendered notification to one manager. Delivery failure
// is reported to the caller and never retried automatically.
type Sink interface {
	Send(ctx context.Context, managerID int64, text string) error
}

// Pending tracks one delivered page until a manager marks it handled.
type Pending struct {
	UserID    int64
	ManagerID int64
	Question  string
	CreatedAt time.Time
	Handled   bool
	HandledAt time.Time
}

// Stats is the running notifier counters.
type Stats struct {
	TotalCalls         int
	HandledCalls       int
	PendingCalls       int
	AvgResponseSeconds float64
	LastNotification   time.Time
}

// Notifier fans pages out to the configured managers and tracks them
// until handled. Safe for concurrent use.
type Notifier struct {
	mu       sync.Mutex
	sink     Sink
	managers []int64
	pending  []*Pending
	now      func() time.Time

	totalCalls   int
	handledCalls int
	avgResponse  float64
	lastNotified time.Time
}

// NewNotifier builds a notifier over the delivery sink and manager list.
func NewNotifier(sink Sink, managers []int64) *Notifier {
	return &Notifier{sink: sink, managers: managers, now: time.Now}
}

// NewNotifierWithClock is NewNotifier with an injected clock for tests.
func NewNotifierWithClock(sink Sink, managers []int64, clock func() time.Time) *Notifier {
	n := NewNotifier(sink, managers)
	n.now = clock
	return n
}

// NotifyManagers pages every configured manager about a question the bot
// could not answer. Returns an error only when no manager could be
// reached; partial delivery counts as success and each delivered manager
// gets a Pending entry.
func (n *Notifier) NotifyManagers(ctx context.Context, user UserInfo, question string, history []ContextMessage) error {
	if n.sink == nil || len(n.managers) == 0 {
		log.Printf("📞 manager page skipped (no sink/managers): user_id=%d question: %s",
			user.ID, textutil.Truncate(question, 50))
		return fmt.Errorf("no managers configured")
	}

	n.mu.Lock()
	n.totalCalls++
	n.lastNotified = n.now()
	n.mu.Unlock()

	text := renderPage(user, question, history)

	delivered := 0
	for _, managerID := range n.managers {
		if err := n.sink.Send(ctx, managerID, text); err != nil {
			log.Printf("❌ failed to page manager %d: %v", managerID, err)
			continue
		}
		delivered++

		n.mu.Lock()
		n.pending = append(n.pending, &Pending{
			UserID:    user.ID,
			ManagerID: managerID,
			Question:  question,
			CreatedAt: n.now(),
		})
		n.mu.Unlock()
		log.Printf("✅ manager %d paged about user %d", managerID, user.ID)
	}

	if delivered == 0 {
		return fmt.Errorf("failed to reach any of %d managers", len(n.managers))
	}
	return nil
}

// NotifyTypingTimeout pings the first manager when a user has been typing
// past the configured threshold. Best effort, no pending entry.
func (n *Notifier) NotifyTypingTimeout(ctx context.Context, user UserInfo) error {
	if n.sink == nil || len(n.managers) == 0 {
		return nil
	}

	text := fmt.Sprintf(
		"⏰ ВНИМАНИЕ: Долгий набор текста\n\n%s\n\nПользователь долго набирает сообщение. Возможно, нужна помощь или есть сложный вопрос.",
		renderUser(user))

	if err := n.sink.Send(ctx, n.managers[0], text); err != nil {
		return fmt.Errorf("failed to send typing-timeout page: %w", err)
	}
	return nil
}

// MarkHandled resolves the oldest unhandled page for the user. managerID
// zero matches any manager. Response time feeds a simple incremental
// average, not a rolling window.
func (n *Notifier) MarkHandled(userID, managerID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, p := range n.pending {
		if p.UserID != userID || p.Handled {
			continue
		}
		if managerID != 0 && p.ManagerID != managerID {
			continue
		}

		p.Handled = true
		p.HandledAt = n.now()
		n.handledCalls++

		responseTime := p.HandledAt.Sub(p.CreatedAt).Seconds()
		if n.avgResponse == 0 {
			n.avgResponse = responseTime
		} else {
			n.avgResponse = (n.avgResponse + responseTime) / 2
		}
		log.Printf("✅ page for user %d handled in %.0fs", userID, responseTime)
		return true
	}
	return false
}

// PendingPages returns a copy of the unhandled pages.
func (n *Notifier) PendingPages() []Pending {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []Pending
	for _, p := range n.pending {
		if !p.Handled {
			out = append(out, *p)
		}
	}
	return out
}

// Stats returns the running counters.
func (n *Notifier) Stats() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()

	pending := 0
	for _, p := range n.pending {
		if !p.Handled {
			pending++
		}
	}
	return Stats{
		TotalCalls:         n.totalCalls,
		HandledCalls:       n.handledCalls,
		PendingCalls:       pending,
		AvgResponseSeconds: n.avgResponse,
		LastNotification:   n.lastNotified,
	}
}

// CleanupOld drops pages older than maxAge, handled or not, and returns
// how many were removed.
func (n *Notifier) CleanupOld(maxAge time.Duration) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	cutoff := n.now().Add(-maxAge)
	kept := n.pending[:0]
	removed := 0
	for _, p := range n.pending {
		if p.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	n.pending = kept
	if removed > 0 {
		log.Printf("🧹 dropped %d stale pages", removed)
	}
	return removed
}

func renderUser(user UserInfo) string {
	info := fmt.Sprintf("👤 Пользователь: %s %s", user.FirstName, user.LastName)
	if user.Username != "" {
		info += fmt.Sprintf(" (@%s)", user.Username)
	}
	return info + fmt.Sprintf(" (ID: %d)", user.ID)
}

func renderPage(user UserInfo, question string, history []ContextMessage) string {
	var b strings.Builder
	b.WriteString("🚨 ВНИМАНИЕ: Вызов менеджера!\n\n")
	b.WriteString(renderUser(user))
	b.WriteString(fmt.Sprintf("\n❓ Вопрос: %s\n", question))

	if len(history) > 0 {
		b.WriteString("\n📜 Контекст диалога:\n")
		start := 0
		if len(history) > 3 {
			start = len(history) - 3
		}
		for _, msg := range history[start:] {
			sender := "Пользователь"
			if msg.IsBot {
				sender = "Бот"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", sender, textutil.Truncate(msg.Text, 100)))
		}
	}

	b.WriteString("\n⚠️ Требуется вмешательство менеджера!")
	return b.String()
}
