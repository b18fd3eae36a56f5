// Package catalog holds the fixed card catalog the tracker is built around.
// The catalog is supplied fully formed before startup and is read-only; card
// numbers are the stable join key to ownership counts and image assets.
package catalog

import (
	"fmt"
	"strings"
)

// Card is a single catalog entry.
type Card struct {
	Number  string `json:"number"`
	Name    string `json:"name"`
	Product string `json:"product"`
	Type    string `json:"type"`
	Rarity  string `json:"rarity,omitempty"`
}

// Catalog is the ordered set of all known cards plus indexes derived once at
// load time: number lookup, filter option lists, and the rarity style-variant
// lookup used by the gallery.
type Catalog struct {
	cards    []Card
	byNumber map[string]Card

	productOptions []string
	typeOptions    []string
	rarityVariants map[string]string
}

// New builds a Catalog from the given cards. Card order is preserved.
// It fails on an empty or duplicate number since the number joins ownership
// counts and image assets across sessions.
func New(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards:          make([]Card, len(cards)),
		byNumber:       make(map[string]Card, len(cards)),
		rarityVariants: make(map[string]string),
	}
	copy(c.cards, cards)

	seenProducts := make(map[string]bool)
	seenTypes := make(map[string]bool)

	for i, card := range c.cards {
		if card.Number == "" {
			return nil, fmt.Errorf("catalog entry %d (%q) has an empty number", i, card.Name)
		}
		if _, dup := c.byNumber[card.Number]; dup {
			return nil, fmt.Errorf("duplicate card number %q in catalog", card.Number)
		}
		c.byNumber[card.Number] = card

		// Option lists keep first-appearance order; duplicates collapse.
		if !seenProducts[card.Product] {
			seenProducts[card.Product] = true
			c.productOptions = append(c.productOptions, card.Product)
		}
		if !seenTypes[card.Type] {
			seenTypes[card.Type] = true
			c.typeOptions = append(c.typeOptions, card.Type)
		}

		if card.Rarity != "" {
			if _, ok := c.rarityVariants[card.Rarity]; !ok {
				c.rarityVariants[card.Rarity] = rarityVariant(card.Rarity)
			}
		}
	}

	return c, nil
}

// rarityVariant derives the CSS-safe style-variant token for a rarity value.
// The literal plus sign is the only character catalog rarities carry that is
// not class-safe; it maps to the word "plus" (e.g. "SR+" -> "rarity-SRplus").
func rarityVariant(rarity string) string {
	return "rarity-" + strings.ReplaceAll(rarity, "+", "plus")
}

// Cards returns the catalog entries in catalog order.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Len returns the number of unique cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Lookup returns the card with the given number.
func (c *Catalog) Lookup(number string) (Card, bool) {
	card, ok := c.byNumber[number]
	return card, ok
}

// Has reports whether the catalog contains the given number.
func (c *Catalog) Has(number string) bool {
	_, ok := c.byNumber[number]
	return ok
}

// ProductOptions returns the distinct product values in first-appearance order.
func (c *Catalog) ProductOptions() []string {
	return append([]string(nil), c.productOptions...)
}

// TypeOptions returns the distinct type values in first-appearance order.
func (c *Catalog) TypeOptions() []string {
	return append([]string(nil), c.typeOptions...)
}

// RarityVariant returns the style-variant token for a rarity value, or the
// empty string for an empty or unknown rarity. The lookup is enumerated from
// the catalog at load time so render code never does string surgery.
func (c *Catalog) RarityVariant(rarity string) string {
	return c.rarityVariants[rarity]
}
