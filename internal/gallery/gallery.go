// Package gallery projects filtered catalog entries plus owned counts into
// the view model the browser page renders. All display decisions that used
// to live in DOM code happen here: identifier labels, image paths with their
// fallback, rarity badge variants, and the unowned marker.
package gallery

import (
	"fmt"

	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
)

// ImagePathPrefix is the URL prefix card images are served under.
const ImagePathPrefix = "/cards_images/"

// FallbackImage is the asset served when a card has no image of its own.
const FallbackImage = "default_card.png"

// EmptyMessage is shown in place of an empty gallery.
const EmptyMessage = "no matching cards"

// Card is one gallery entry.
type Card struct {
	Number        string `json:"number"`
	Name          string `json:"name"`
	Label         string `json:"label"` // formatted identifier, e.g. "No.: 001"
	Product       string `json:"product"`
	Type          string `json:"type"`
	Rarity        string `json:"rarity,omitempty"`        // badge text; empty = no badge
	RarityVariant string `json:"rarityVariant,omitempty"` // style-variant token for the badge
	ImageURL      string `json:"imageUrl"`
	FallbackURL   string `json:"fallbackUrl"`
	Count         int    `json:"count"`
	Owned         bool   `json:"owned"` // false marks the dimmed unowned state
}

// ImageURL returns the image path for a card number.
func ImageURL(number string) string {
	return ImagePathPrefix + number + ".png"
}

// Build projects the already-filtered, already-sorted cards into gallery
// entries carrying current owned counts.
func Build(cards []catalog.Card, cat *catalog.Catalog, store *collection.Store) []Card {
	counts := store.Counts()

	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		count := counts[c.Number]
		out = append(out, Card{
			Number:        c.Number,
			Name:          c.Name,
			Label:         fmt.Sprintf("No.: %s", c.Number),
			Product:       c.Product,
			Type:          c.Type,
			Rarity:        c.Rarity,
			RarityVariant: cat.RarityVariant(c.Rarity),
			ImageURL:      ImageURL(c.Number),
			FallbackURL:   ImagePathPrefix + FallbackImage,
			Count:         count,
			Owned:         count > 0,
		})
	}
	return out
}
