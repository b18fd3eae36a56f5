package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ktanahashi/cardbinder/internal/catalog"
)

func transferCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Card{
		{Number: "001", Name: "Alpha", Product: "P1", Type: "T1"},
		{Number: "002", Name: "Beta", Product: "P1", Type: "T2"},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return cat
}

func TestExportNothingToExport(t *testing.T) {
	var buf bytes.Buffer

	err := Export(&buf, map[string]int{"001": 0})
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("Expected ErrNothingToExport, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestExportFormat(t *testing.T) {
	var buf bytes.Buffer

	// Unsorted input, one zero entry that must be skipped.
	err := Export(&buf, map[string]int{"002": 1, "001": 3, "003": 0})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := "cardNumber,count\r\n001,3\r\n002,1\r\n"
	if buf.String() != want {
		t.Errorf("Unexpected export output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestImportSkipsAndCountsBadRows(t *testing.T) {
	cat := transferCatalog(t)
	input := "cardNumber,count\n001,3\nXYZ,2\n002,notanumber"

	result, err := Import(strings.NewReader(input), cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 2 {
		t.Errorf("Expected 2 row errors, got %d", result.RowErrors)
	}
	if len(result.Counts) != 1 || result.Counts["001"] != 3 {
		t.Errorf("Expected mapping {001:3}, got %v", result.Counts)
	}
}

func TestImportWrongFieldCountIsRowError(t *testing.T) {
	cat := transferCatalog(t)
	input := "cardNumber,count\n001\n001,2,3\n002,1"

	result, err := Import(strings.NewReader(input), cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 2 {
		t.Errorf("Expected 2 row errors, got %d", result.RowErrors)
	}
	if len(result.Counts) != 1 || result.Counts["002"] != 1 {
		t.Errorf("Expected mapping {002:1}, got %v", result.Counts)
	}
}

func TestImportSkipsBlankLinesWithoutError(t *testing.T) {
	cat := transferCatalog(t)
	input := "cardNumber,count\r\n\r\n001,2\r\n\r\n"

	result, err := Import(strings.NewReader(input), cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 0 {
		t.Errorf("Expected no row errors, got %d", result.RowErrors)
	}
	if result.Counts["001"] != 2 {
		t.Errorf("Expected count 2, got %v", result.Counts)
	}
}

func TestImportDuplicateNumberLastWins(t *testing.T) {
	cat := transferCatalog(t)
	input := "cardNumber,count\n001,1\n001,5"

	result, err := Import(strings.NewReader(input), cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 0 {
		t.Errorf("Expected no row errors for duplicates, got %d", result.RowErrors)
	}
	if result.Counts["001"] != 5 {
		t.Errorf("Expected last duplicate to win with 5, got %d", result.Counts["001"])
	}
}

func TestImportNegativeCountIsRowError(t *testing.T) {
	cat := transferCatalog(t)
	input := "cardNumber,count\n001,-2"

	result, err := Import(strings.NewReader(input), cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 1 {
		t.Errorf("Expected 1 row error, got %d", result.RowErrors)
	}
	if len(result.Counts) != 0 {
		t.Errorf("Expected empty mapping, got %v", result.Counts)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	cat := transferCatalog(t)
	counts := map[string]int{"001": 4, "002": 0}

	var buf bytes.Buffer
	if err := Export(&buf, counts); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	result, err := Import(&buf, cat)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.RowErrors != 0 {
		t.Errorf("Expected no row errors, got %d", result.RowErrors)
	}
	if len(result.Counts) != 1 || result.Counts["001"] != 4 {
		t.Errorf("Expected round-tripped mapping {001:4}, got %v", result.Counts)
	}
	// 002 was unowned: absent from the export, so it defaults back to 0.
	if _, present := result.Counts["002"]; present {
		t.Error("Expected zero-count entry to be absent after round trip")
	}
}
