package collection

import (
	"context"
	"errors"
	"testing"
)

// fakeSlots is an in-memory SlotStore with a switchable write failure.
type fakeSlots struct {
	values   map[string]string
	failNext bool
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{values: make(map[string]string)}
}

func (f *fakeSlots) GetSlot(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSlots) SetSlot(_ context.Context, key, value string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("disk full")
	}
	f.values[key] = value
	return nil
}

func TestLoadMissingSlotStartsEmpty(t *testing.T) {
	store := NewStore(newFakeSlots())

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := len(store.Counts()); n != 0 {
		t.Errorf("Expected empty store, got %d entries", n)
	}
}

func TestLoadMalformedSlotStartsEmpty(t *testing.T) {
	slots := newFakeSlots()
	slots.values[SlotKey] = "this is not JSON"
	store := NewStore(slots)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load should not fail on malformed data: %v", err)
	}
	if n := len(store.Counts()); n != 0 {
		t.Errorf("Expected empty store after malformed load, got %d entries", n)
	}
}

func TestLoadClampsNegativePersistedCounts(t *testing.T) {
	slots := newFakeSlots()
	slots.values[SlotKey] = `{"001":-3,"002":2}`
	store := NewStore(slots)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := store.Count("001"); got != 0 {
		t.Errorf("Expected clamped count 0, got %d", got)
	}
	if got := store.Count("002"); got != 2 {
		t.Errorf("Expected count 2, got %d", got)
	}
}

func TestAdjustCountNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSlots())

	for i := 0; i < 5; i++ {
		if count, err := store.AdjustCount(ctx, "001", -1); err != nil {
			t.Fatalf("AdjustCount failed: %v", err)
		} else if count != 0 {
			t.Fatalf("Expected count clamped at 0, got %d", count)
		}
	}
}

func TestAdjustCountRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSlots())

	if _, err := store.SetCount(ctx, "001", 3); err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	if _, err := store.AdjustCount(ctx, "001", 1); err != nil {
		t.Fatalf("AdjustCount failed: %v", err)
	}
	if _, err := store.AdjustCount(ctx, "001", -1); err != nil {
		t.Fatalf("AdjustCount failed: %v", err)
	}
	if got := store.Count("001"); got != 3 {
		t.Errorf("Expected +1/-1 round trip to restore 3, got %d", got)
	}
}

func TestSetCountClampsBelowZero(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSlots())

	count, err := store.SetCount(ctx, "001", -7)
	if err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected clamped count 0, got %d", count)
	}
}

func TestMutationPersistsAfterEverySave(t *testing.T) {
	ctx := context.Background()
	slots := newFakeSlots()
	store := NewStore(slots)

	if _, err := store.AdjustCount(ctx, "001", 2); err != nil {
		t.Fatalf("AdjustCount failed: %v", err)
	}

	// A fresh store over the same slots sees the persisted state.
	fresh := NewStore(slots)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := fresh.Count("001"); got != 2 {
		t.Errorf("Expected persisted count 2, got %d", got)
	}
}

func TestFailedSaveKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	slots := newFakeSlots()
	store := NewStore(slots)
	slots.failNext = true

	count, err := store.AdjustCount(ctx, "001", 1)
	if err == nil {
		t.Fatal("Expected save error")
	}
	if count != 1 {
		t.Errorf("Expected in-memory count 1 despite failed save, got %d", count)
	}
	if got := store.Count("001"); got != 1 {
		t.Errorf("Expected mutation retained in memory, got %d", got)
	}
	if _, ok := slots.values[SlotKey]; ok {
		t.Error("Expected nothing persisted after failed save")
	}
}

func TestReplaceAllSubstitutesWholeMapping(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSlots())

	if _, err := store.SetCount(ctx, "001", 5); err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	if err := store.ReplaceAll(ctx, map[string]int{"002": 1, "003": -4}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	if got := store.Count("001"); got != 0 {
		t.Errorf("Expected old entry gone (count 0), got %d", got)
	}
	if got := store.Count("002"); got != 1 {
		t.Errorf("Expected count 1, got %d", got)
	}
	if got := store.Count("003"); got != 0 {
		t.Errorf("Expected negative import count clamped to 0, got %d", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSlots())

	if _, err := store.SetCount(ctx, "001", 5); err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if n := len(store.Counts()); n != 0 {
		t.Errorf("Expected empty store after reset, got %d entries", n)
	}
}
