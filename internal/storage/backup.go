package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// CreateSlotBackup writes a password-protected backup of the slot stored
// under key. The payload is the raw slot value encrypted with AES-256-GCM
// behind an Argon2id key derivation, framed by a magic header.
// Backing up a missing slot backs up an empty value.
func (s *Service) CreateSlotBackup(ctx context.Context, w io.Writer, key, password string) error {
	value, _, err := s.GetSlot(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read slot for backup: %w", err)
	}

	encrypted, err := encryptData([]byte(value), password)
	if err != nil {
		return fmt.Errorf("failed to encrypt backup: %w", err)
	}

	if _, err := w.Write([]byte(backupMagicHeader)); err != nil {
		return fmt.Errorf("failed to write backup header: %w", err)
	}
	if _, err := w.Write(encrypted); err != nil {
		return fmt.Errorf("failed to write backup data: %w", err)
	}
	return nil
}

// RestoreSlotBackup reads a backup created by CreateSlotBackup and writes
// the decrypted value back under key. The slot is only touched after the
// whole backup has been read and decrypted.
func (s *Service) RestoreSlotBackup(ctx context.Context, r io.Reader, key, password string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if !bytes.HasPrefix(data, []byte(backupMagicHeader)) {
		return fmt.Errorf("not a recognized backup file")
	}

	value, err := decryptData(data[len(backupMagicHeader):], password)
	if err != nil {
		return fmt.Errorf("failed to decrypt backup: %w", err)
	}

	if err := s.SetSlot(ctx, key, string(value)); err != nil {
		return fmt.Errorf("failed to restore slot: %w", err)
	}
	return nil
}
