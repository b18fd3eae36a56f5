package catalog

import (
	"sort"
	"strings"
)

// Criteria narrows the catalog to a display subset. All three predicates must
// match (logical AND); an empty field matches everything.
type Criteria struct {
	Name    string `json:"name"`    // case-insensitive substring, trimmed
	Product string `json:"product"` // exact match
	Type    string `json:"type"`    // exact match
}

// IsZero reports whether the criteria apply no filtering at all.
func (cr Criteria) IsZero() bool {
	return strings.TrimSpace(cr.Name) == "" && cr.Product == "" && cr.Type == ""
}

// Apply returns the cards matching the criteria, sorted ascending by number
// using lexical byte-wise comparison. Unique numbers make the order total, so
// the gallery is stable across calls.
func (c *Catalog) Apply(cr Criteria) []Card {
	name := strings.ToLower(strings.TrimSpace(cr.Name))

	var out []Card
	for _, card := range c.cards {
		if name != "" && !strings.Contains(strings.ToLower(card.Name), name) {
			continue
		}
		if cr.Product != "" && card.Product != cr.Product {
			continue
		}
		if cr.Type != "" && card.Type != cr.Type {
			continue
		}
		out = append(out, card)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
