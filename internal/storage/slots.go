package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Service provides access to the slot store.
type Service struct {
	db *DB
}

// NewService creates a storage service on top of an open database.
func NewService(db *DB) *Service {
	return &Service{db: db}
}

// DB returns the underlying database handle.
func (s *Service) DB() *DB {
	return s.db
}

// GetSlot reads the value stored under key. A missing key is not an error;
// it returns ok=false.
func (s *Service) GetSlot(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM slots WHERE key = ?`

	var value string
	err := s.db.Conn().QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, true, nil
}

// SetSlot writes value under key, replacing any previous value.
func (s *Service) SetSlot(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Conn().ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// DeleteSlot removes the value stored under key. Deleting a missing key is
// a no-op.
func (s *Service) DeleteSlot(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}
