// Package storage provides the local SQLite persistence layer. The tracker
// keeps all mutable state in a single key-value slot table, mirroring the
// one-key browser storage the collection page grew out of.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps the database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Config holds database configuration settings.
type Config struct {
	// Path is the file path to the SQLite database.
	// Use ":memory:" for an in-memory database (useful for testing).
	Path string

	// BusyTimeout sets how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// JournalMode sets the SQLite journal mode. Default: WAL.
	JournalMode string

	// MaxOpenConns limits open connections. Default: 10.
	MaxOpenConns int

	// AutoMigrate runs pending schema migrations on Open.
	AutoMigrate bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:         path,
		BusyTimeout:  5 * time.Second,
		JournalMode:  "WAL",
		MaxOpenConns: 10,
	}
}

// Open creates a new database connection with the given configuration.
func Open(config *Config) (*DB, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if config.Path != ":memory:" {
		dir := filepath.Dir(config.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if config.AutoMigrate && config.Path != ":memory:" {
		if err := migrateUp(config.Path); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=%s&_foreign_keys=on",
		config.Path,
		config.BusyTimeout.Milliseconds(),
		config.JournalMode,
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if config.Path == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	}

	if err := conn.Ping(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to close database after ping error: %w (original error: %v)", closeErr, err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: config.Path}

	// The migration manager opens its own connection, which for an in-memory
	// database would be a different database entirely. Apply the schema on
	// the live connection instead.
	if config.AutoMigrate && config.Path == ":memory:" {
		if err := db.applySchema(); err != nil {
			if closeErr := conn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close database after schema error: %w (original error: %v)", closeErr, err)
			}
			return nil, err
		}
	}

	return db, nil
}

// Conn returns the underlying sql.DB connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
