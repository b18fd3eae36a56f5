package collection

import (
	"math"

	"github.com/ktanahashi/cardbinder/internal/catalog"
)

// Stats summarizes collection completion against the catalog.
type Stats struct {
	OwnedUnique       int     `json:"ownedUnique"`
	TotalUnique       int     `json:"totalUnique"`
	CompletionPercent float64 `json:"completionPercent"`
}

// ProductStats is completion broken down by product.
type ProductStats struct {
	Product           string  `json:"product"`
	OwnedUnique       int     `json:"ownedUnique"`
	TotalUnique       int     `json:"totalUnique"`
	CompletionPercent float64 `json:"completionPercent"`
}

// roundPercent rounds to 2 decimal places.
func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

// completionPercent guards the zero-catalog division.
func completionPercent(owned, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundPercent(float64(owned) / float64(total) * 100)
}

// ComputeStats derives completion statistics. Only catalog entries count:
// stale numbers in the store are ignored, and an entry counts as owned only
// with a stored count above 0.
func ComputeStats(cat *catalog.Catalog, store *Store) Stats {
	counts := store.Counts()

	owned := 0
	for _, card := range cat.Cards() {
		if counts[card.Number] > 0 {
			owned++
		}
	}

	total := cat.Len()
	return Stats{
		OwnedUnique:       owned,
		TotalUnique:       total,
		CompletionPercent: completionPercent(owned, total),
	}
}

// ComputeProductStats derives per-product completion, in the catalog's
// product first-appearance order.
func ComputeProductStats(cat *catalog.Catalog, store *Store) []ProductStats {
	counts := store.Counts()

	owned := make(map[string]int)
	total := make(map[string]int)
	for _, card := range cat.Cards() {
		total[card.Product]++
		if counts[card.Number] > 0 {
			owned[card.Product]++
		}
	}

	products := cat.ProductOptions()
	out := make([]ProductStats, 0, len(products))
	for _, p := range products {
		out = append(out, ProductStats{
			Product:           p,
			OwnedUnique:       owned[p],
			TotalUnique:       total[p],
			CompletionPercent: completionPercent(owned[p], total[p]),
		})
	}
	return out
}
