// Package store provides SQLite persistence for chapters and events.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// New opens or creates an SQLite database at the given path. Use ":memory:"
// for an ephemeral store in tests.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrency.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chapters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL DEFAULT 'main_period',
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		color TEXT NOT NULL DEFAULT '#3B82F6',
		x_position REAL NOT NULL DEFAULT 0,
		parent_branch INTEGER REFERENCES chapters(id) ON DELETE CASCADE,
		source_entry INTEGER REFERENCES events(id) ON DELETE SET NULL,
		source_chapter INTEGER REFERENCES chapters(id) ON DELETE SET NULL,
		collapsed INTEGER NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chapter INTEGER REFERENCES chapters(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_chapters_parent ON chapters(parent_branch);
	CREATE INDEX IF NOT EXISTS idx_events_chapter ON events(chapter);
	`
	_, err := s.conn.Exec(schema)
	return err
}
