// Package persistence provides SQLite-backed durable record storage.
// The world state is one JSON aggregate stored under a fixed logical key.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for keyed record persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS world_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// LoadRecord returns the last written value for key, or nil when the
// record has never been written.
func (db *DB) LoadRecord(key string) ([]byte, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_state WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", key, err)
	}
	return []byte(value), nil
}

// SaveRecord replaces the value stored under key.
func (db *DB) SaveRecord(key string, value []byte) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_state (key, value, updated_at) VALUES (?, ?, ?)",
		key, string(value), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}
	return nil
}
