// Package history is the append-only conversation log backed by sqlite.
// Every failure here is non-fatal to query resolution: callers get empty
// results and the error is logged.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339

const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	created_at TIMESTAMP,
	last_activity TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	message_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	message_text TEXT,
	is_bot BOOLEAN,
	timestamp TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users (user_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_user_id ON messages(user_id);
`

// Entry is one logged message.
type Entry struct {
	Text      string
	IsBot     bool
	Timestamp time.Time
}

// UserMeta is the optional profile data stored alongside messages.
type UserMeta struct {
	Username  string
	FirstName string
	LastName  string
}

// UserStats summarizes one user's log.
type UserStats struct {
	TotalMessages int
	BotMessages   int
	UserMessages  int
	FirstMessage  time.Time
	LastActivity  time.Time
}

// Store is the sqlite-backed log. Safe for concurrent use; database/sql
// serializes access to the single file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database file (and its directory) if needed and
// ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append logs one message and refreshes the user's profile row.
func (s *Store) Append(userID int64, meta UserMeta, text string, isBot bool) error {
	now := s.now().UTC().Format(timeFormat)

	_, err := s.db.Exec(`
		INSERT INTO users (user_id, username, first_name, last_name, created_at, last_activity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			last_activity = excluded.last_activity`,
		userID, meta.Username, meta.FirstName, meta.LastName, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO messages (user_id, message_text, is_bot, timestamp)
		VALUES (?, ?, ?, ?)`,
		userID, text, isBot, now)
	if err != nil {
		return fmt.Errorf("failed to append message for user %d: %w", userID, err)
	}
	return nil
}

// Recent returns the user's last messages, oldest first.
func (s *Store) Recent(userID int64, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT message_text, is_bot, timestamp
		FROM messages
		WHERE user_id = ?
		ORDER BY message_id DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Text, &e.IsBot, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Timestamp, _ = time.Parse(timeFormat, ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	// Query returns newest first; flip to oldest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Stats summarizes the user's log.
func (s *Store) Stats(userID int64) (UserStats, error) {
	var stats UserStats

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(is_bot), 0) FROM messages WHERE user_id = ?`,
		userID).Scan(&stats.TotalMessages, &stats.BotMessages)
	if err != nil {
		return stats, fmt.Errorf("failed to count messages for user %d: %w", userID, err)
	}
	stats.UserMessages = stats.TotalMessages - stats.BotMessages

	var first, last sql.NullString
	err = s.db.QueryRow(
		`SELECT MIN(timestamp), MAX(timestamp) FROM messages WHERE user_id = ?`,
		userID).Scan(&first, &last)
	if err != nil {
		return stats, fmt.Errorf("failed to read message times for user %d: %w", userID, err)
	}
	if first.Valid {
		stats.FirstMessage, _ = time.Parse(timeFormat, first.String)
	}
	if last.Valid {
		stats.LastActivity, _ = time.Parse(timeFormat, last.String)
	}
	return stats, nil
}
