package catalog

import (
	"testing"
)

func testCards() []Card {
	return []Card{
		{Number: "001", Name: "Alpha", Product: "P1", Type: "T1", Rarity: "SR+"},
		{Number: "002", Name: "Beta", Product: "P1", Type: "T2", Rarity: "R"},
		{Number: "003", Name: "Gamma", Product: "P2", Type: "T1"},
	}
}

func TestNewRejectsDuplicateNumbers(t *testing.T) {
	cards := testCards()
	cards = append(cards, Card{Number: "001", Name: "Alpha again", Product: "P1", Type: "T1"})

	if _, err := New(cards); err == nil {
		t.Fatal("Expected error for duplicate card number, got nil")
	}
}

func TestNewRejectsEmptyNumber(t *testing.T) {
	cards := []Card{{Number: "", Name: "Nameless", Product: "P1", Type: "T1"}}

	if _, err := New(cards); err == nil {
		t.Fatal("Expected error for empty card number, got nil")
	}
}

func TestOptionsKeepFirstAppearanceOrder(t *testing.T) {
	cat, err := New(testCards())
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	products := cat.ProductOptions()
	if len(products) != 2 || products[0] != "P1" || products[1] != "P2" {
		t.Errorf("Unexpected product options: %v", products)
	}

	types := cat.TypeOptions()
	if len(types) != 2 || types[0] != "T1" || types[1] != "T2" {
		t.Errorf("Unexpected type options: %v", types)
	}
}

func TestLookup(t *testing.T) {
	cat, err := New(testCards())
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	card, ok := cat.Lookup("002")
	if !ok {
		t.Fatal("Expected card 002 to exist")
	}
	if card.Name != "Beta" {
		t.Errorf("Expected name Beta, got %q", card.Name)
	}

	if _, ok := cat.Lookup("999"); ok {
		t.Error("Expected lookup of unknown number to fail")
	}
}

func TestRarityVariant(t *testing.T) {
	cat, err := New(testCards())
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	// Plus signs map to the literal word so the token stays class-safe.
	if got := cat.RarityVariant("SR+"); got != "rarity-SRplus" {
		t.Errorf("Expected rarity-SRplus, got %q", got)
	}
	if got := cat.RarityVariant("R"); got != "rarity-R" {
		t.Errorf("Expected rarity-R, got %q", got)
	}
	if got := cat.RarityVariant(""); got != "" {
		t.Errorf("Expected empty variant for empty rarity, got %q", got)
	}
	if got := cat.RarityVariant("unseen"); got != "" {
		t.Errorf("Expected empty variant for rarity not in catalog, got %q", got)
	}
}
