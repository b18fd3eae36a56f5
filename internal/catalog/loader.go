package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a catalog from a JSON file containing an array of cards.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no cards", path)
	}

	cat, err := New(cards)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", path, err)
	}
	return cat, nil
}
