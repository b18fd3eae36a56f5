// Package collection manages owned-count state for catalog cards. The store
// is the single mutable resource in the tracker: an in-memory mapping from
// card number to owned count, persisted to one well-known storage slot after
// every mutation.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// SlotKey is the well-known storage slot holding the ownership mapping.
const SlotKey = "ownedCards"

// SlotStore is the persistence the store flushes to. Satisfied by
// *storage.Service.
type SlotStore interface {
	GetSlot(ctx context.Context, key string) (string, bool, error)
	SetSlot(ctx context.Context, key, value string) error
}

// Store holds owned counts keyed by card number. Absent key means count 0.
// Mutations follow mutate-then-persist: the in-memory state is updated first
// and kept even when the persistence write fails, so a failed write only
// means memory and disk diverge until the next successful save.
type Store struct {
	mu     sync.RWMutex
	counts map[string]int
	slots  SlotStore
}

// NewStore creates an empty store backed by the given slot storage.
func NewStore(slots SlotStore) *Store {
	return &Store{
		counts: make(map[string]int),
		slots:  slots,
	}
}

// Load initializes the store from the persisted slot. A missing slot yields
// an empty mapping. Malformed persisted content is logged and also yields an
// empty mapping; Load never fails on bad data, only on storage read errors.
// Negative persisted counts are clamped to 0.
func (s *Store) Load(ctx context.Context) error {
	value, ok, err := s.slots.GetSlot(ctx, SlotKey)
	if err != nil {
		return fmt.Errorf("failed to load ownership slot: %w", err)
	}

	counts := make(map[string]int)
	if ok {
		if err := json.Unmarshal([]byte(value), &counts); err != nil {
			log.Printf("Ignoring malformed ownership data, starting empty: %v", err)
			counts = make(map[string]int)
		}
	}
	for id, n := range counts {
		if n < 0 {
			counts[id] = 0
		}
	}

	s.mu.Lock()
	s.counts = counts
	s.mu.Unlock()
	return nil
}

// save persists the current mapping. Callers must hold the write lock.
func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.counts)
	if err != nil {
		return fmt.Errorf("failed to serialize ownership data: %w", err)
	}
	if err := s.slots.SetSlot(ctx, SlotKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist ownership data: %w", err)
	}
	return nil
}

// Count returns the owned count for a card number (0 when absent).
func (s *Store) Count(number string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[number]
}

// Counts returns a snapshot of the full mapping.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.counts))
	for id, n := range s.counts {
		out[id] = n
	}
	return out
}

// SetCount sets the owned count for a card number, clamped at 0, and
// persists. The returned error reports a persistence failure; the in-memory
// count is set regardless.
func (s *Store) SetCount(ctx context.Context, number string, count int) (int, error) {
	if count < 0 {
		count = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[number] = count
	return count, s.save(ctx)
}

// AdjustCount adds delta to the owned count for a card number, clamped at 0,
// and persists. This is the path the gallery's +/- controls use.
func (s *Store) AdjustCount(ctx context.Context, number string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.counts[number] + delta
	if count < 0 {
		count = 0
	}
	s.counts[number] = count
	return count, s.save(ctx)
}

// ReplaceAll substitutes the whole mapping and persists. Used by bulk import
// and restore, which build the replacement mapping in full before calling,
// so no partial state is ever visible. Negative counts clamp at 0.
func (s *Store) ReplaceAll(ctx context.Context, counts map[string]int) error {
	fresh := make(map[string]int, len(counts))
	for id, n := range counts {
		if n < 0 {
			n = 0
		}
		fresh[id] = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = fresh
	return s.save(ctx)
}

// Reset clears every owned count.
func (s *Store) Reset(ctx context.Context) error {
	return s.ReplaceAll(ctx, nil)
}
