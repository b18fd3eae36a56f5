package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"number": "001", "name": "Blue-Eyes White Dragon", "product": "Starter Deck", "type": "Monster", "rarity": "UR"},
		{"number": "002", "name": "Dark Magician", "product": "Starter Deck", "type": "Monster", "rarity": "SR"}
	]`)

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cat.Len() != 2 {
		t.Errorf("expected 2 cards, got %d", cat.Len())
	}
	card, ok := cat.Lookup("001")
	if !ok {
		t.Fatal("expected card 001 to be present")
	}
	if card.Name != "Blue-Eyes White Dragon" {
		t.Errorf("unexpected card name %q", card.Name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := writeCatalogFile(t, `{not json`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadFileEmptyCatalog(t *testing.T) {
	path := writeCatalogFile(t, `[]`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadFileDuplicateNumbers(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"number": "001", "name": "A", "product": "P", "type": "T"},
		{"number": "001", "name": "B", "product": "P", "type": "T"}
	]`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for duplicate numbers")
	}
}
