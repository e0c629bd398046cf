// Package sqlite provides the study-session ledger.
//
// The JSON accounting record is the source of truth for totals; this ledger
// is the durable history behind it, one row per applied update, queryable
// from the API and the CLI.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the ledger database handle.
type DB struct {
	db *sql.DB
}

// Open creates or opens the ledger database under dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "ledger.db"))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	// Single-process daemon; one writer avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate ledger: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error { return db.db.Close() }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the ledger schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS study_sessions (
			id           TEXT PRIMARY KEY,
			action       TEXT NOT NULL,
			seconds      INTEGER NOT NULL DEFAULT 0,
			coins_delta  INTEGER NOT NULL DEFAULT 0,
			total_coins  INTEGER NOT NULL DEFAULT 0,
			total_study  INTEGER NOT NULL DEFAULT 0,
			recorded_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_recorded ON study_sessions(recorded_at)`,
	}
}

// ─── Session Operations ─────────────────────────────────────────────────────

// Session is one applied accounting update.
type Session struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Seconds    int64     `json:"seconds"`
	CoinsDelta int64     `json:"coins_delta"`
	TotalCoins int64     `json:"total_coins"`
	TotalStudy int64     `json:"total_study"`
	RecordedAt time.Time `json:"recorded_at"`
}

// InsertSession appends a session row.
func (db *DB) InsertSession(s Session) error {
	_, err := db.db.Exec(`
		INSERT INTO study_sessions (id, action, seconds, coins_delta, total_coins, total_study, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Action, s.Seconds, s.CoinsDelta, s.TotalCoins, s.TotalStudy,
		s.RecordedAt.UTC().Format(time.RFC3339))
	return err
}

// RecentSessions returns the newest sessions, most recent first.
func (db *DB) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.db.Query(`
		SELECT id, action, seconds, coins_delta, total_coins, total_study, recorded_at
		FROM study_sessions
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Session
	for rows.Next() {
		var s Session
		var recorded string
		if err := rows.Scan(&s.ID, &s.Action, &s.Seconds, &s.CoinsDelta, &s.TotalCoins, &s.TotalStudy, &recorded); err != nil {
			return nil, err
		}
		s.RecordedAt, _ = time.Parse(time.RFC3339, recorded)
		result = append(result, s)
	}
	return result, rows.Err()
}

// SessionCount returns the total number of ledger rows.
func (db *DB) SessionCount() (int64, error) {
	var count int64
	err := db.db.QueryRow(`SELECT COUNT(*) FROM study_sessions`).Scan(&count)
	return count, err
}

// StudySecondsSince sums recorded study seconds at or after the given time.
func (db *DB) StudySecondsSince(since time.Time) (int64, error) {
	var total sql.NullInt64
	err := db.db.QueryRow(`
		SELECT SUM(seconds) FROM study_sessions
		WHERE action = 'update_timer' AND recorded_at >= ?
	`, since.UTC().Format(time.RFC3339)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
