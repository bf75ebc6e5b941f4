package history

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "conversations.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := testStore(t)
	meta := UserMeta{Username: "ivan", FirstName: "Иван"}

	msgs := []struct {
		text  string
		isBot bool
	}{
		{"привет", false},
		{"Здравствуйте!", true},
		{"сколько стоит базовый?", false},
		{"Тариф: Базовый", true},
	}
	for _, m := range msgs {
		if err := s.Append(42, meta, m.text, m.isBot); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(42, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Oldest first within the returned window.
	if got[0].Text != "Здравствуйте!" || got[2].Text != "Тариф: Базовый" {
		t.Errorf("order wrong: %q ... %q", got[0].Text, got[2].Text)
	}
	if !got[0].IsBot || got[1].IsBot {
		t.Errorf("is_bot flags wrong: %+v", got)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not restored")
	}
}

func TestRecentOtherUser(t *testing.T) {
	s := testStore(t)
	if err := s.Append(42, UserMeta{}, "привет", false); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent(99, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("foreign user history = %v, want empty", got)
	}
}

func TestStats(t *testing.T) {
	s := testStore(t)
	s.now = func() time.Time { return time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC) }

	for i := 0; i < 3; i++ {
		if err := s.Append(42, UserMeta{}, "вопрос", false); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Append(42, UserMeta{}, "ответ", true); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats(42)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMessages != 4 || stats.BotMessages != 1 || stats.UserMessages != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.FirstMessage.IsZero() || stats.LastActivity.IsZero() {
		t.Errorf("times not set: %+v", stats)
	}
}

func TestStatsEmptyUser(t *testing.T) {
	s := testStore(t)
	stats, err := s.Stats(123)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMessages != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}
