// Package handlers implements the HTTP handlers for the tracker API.
package handlers

import (
	"net/http"

	"github.com/ktanahashi/cardbinder/internal/api/response"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
	"github.com/ktanahashi/cardbinder/internal/gallery"
)

// CatalogHandler serves the filterable gallery view of the catalog.
type CatalogHandler struct {
	provider *catalog.Provider
	store    *collection.Store
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(provider *catalog.Provider, store *collection.Store) *CatalogHandler {
	return &CatalogHandler{provider: provider, store: store}
}

// GalleryResponse is the filtered gallery plus its entry count. Message is
// set to the placeholder text when no card matches.
type GalleryResponse struct {
	Cards   []gallery.Card `json:"cards"`
	Count   int            `json:"count"`
	Message string         `json:"message,omitempty"`
}

// GetCards returns the gallery for the filter criteria in the query string.
// Empty criteria return the full catalog, sorted by number.
func (h *CatalogHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	criteria := catalog.Criteria{
		Name:    r.URL.Query().Get("name"),
		Product: r.URL.Query().Get("product"),
		Type:    r.URL.Query().Get("type"),
	}

	cat := h.provider.Current()
	filtered := cat.Apply(criteria)
	cards := gallery.Build(filtered, cat, h.store)

	resp := GalleryResponse{Cards: cards, Count: len(cards)}
	if len(cards) == 0 {
		resp.Message = gallery.EmptyMessage
	}
	response.Success(w, resp)
}

// FilterOptions lists the selectable filter values, in catalog
// first-appearance order.
type FilterOptions struct {
	Products []string `json:"products"`
	Types    []string `json:"types"`
}

// GetOptions returns the product and type filter options.
func (h *CatalogHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	cat := h.provider.Current()
	response.Success(w, FilterOptions{
		Products: cat.ProductOptions(),
		Types:    cat.TypeOptions(),
	})
}
