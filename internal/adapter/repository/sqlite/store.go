// Package sqlite provides durable repository implementations over a single
// SQLite database file. Structured user fields (inventory, badges, stats,
// daily challenge) are stored as JSON columns; the match history is a small
// ring trimmed on every insert.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the database handle shared by the sqlite repositories.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema. Use ":memory:" for an ephemeral database in tests.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single writer keeps SQLite happy under concurrent service calls.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &Store{db: db}
	if err := store.bootstrap(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// bootstrap creates the schema if it does not exist yet.
func (s *Store) bootstrap() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			coins INTEGER NOT NULL DEFAULT 0,
			inventory TEXT NOT NULL DEFAULT '{}',
			badges TEXT NOT NULL DEFAULT '[]',
			daily_challenge TEXT NOT NULL DEFAULT '{}',
			stats TEXT NOT NULL DEFAULT '{}',
			theme_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username
			ON users (username COLLATE NOCASE)`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner_name TEXT NOT NULL,
			winner_avatar TEXT NOT NULL DEFAULT '',
			score1 INTEGER NOT NULL,
			score2 INTEGER NOT NULL,
			played_at TEXT NOT NULL
		)`,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
