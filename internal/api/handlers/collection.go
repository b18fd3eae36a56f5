package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ktanahashi/cardbinder/internal/api/response"
	"github.com/ktanahashi/cardbinder/internal/api/websocket"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/charts"
	"github.com/ktanahashi/cardbinder/internal/collection"
)

// CollectionHandler handles owned-count reads and mutations.
type CollectionHandler struct {
	provider *catalog.Provider
	store    *collection.Store
	hub      *websocket.Hub
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(provider *catalog.Provider, store *collection.Store, hub *websocket.Hub) *CollectionHandler {
	return &CollectionHandler{provider: provider, store: store, hub: hub}
}

// MutationResult is returned by every single-card mutation and broadcast on
// the hub, so pages can patch the one affected card and the stats display
// without refetching the gallery. Warning carries a persistence failure; the
// in-memory change took effect regardless.
type MutationResult struct {
	Number  string           `json:"number"`
	Count   int              `json:"count"`
	Owned   bool             `json:"owned"`
	Stats   collection.Stats `json:"stats"`
	Warning string           `json:"warning,omitempty"`
}

// GetCollection returns the full owned-count mapping.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Counts())
}

// SetCountRequest is the body of a set-count request.
type SetCountRequest struct {
	Count int `json:"count"`
}

// SetCount sets the owned count for one card. Counts below 0 clamp to 0.
func (h *CollectionHandler) SetCount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if !h.provider.Current().Has(number) {
		response.NotFound(w, fmt.Errorf("unknown card number %q", number))
		return
	}

	var req SetCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	count, saveErr := h.store.SetCount(r.Context(), number, req.Count)
	h.respondMutation(w, number, count, saveErr)
}

// AdjustCountRequest is the body of an adjust request.
type AdjustCountRequest struct {
	Delta int `json:"delta"`
}

// AdjustCount adds a delta to the owned count for one card, clamped at 0.
// This is the endpoint behind the gallery's +/- controls.
func (h *CollectionHandler) AdjustCount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if !h.provider.Current().Has(number) {
		response.NotFound(w, fmt.Errorf("unknown card number %q", number))
		return
	}

	var req AdjustCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	count, saveErr := h.store.AdjustCount(r.Context(), number, req.Delta)
	h.respondMutation(w, number, count, saveErr)
}

func (h *CollectionHandler) respondMutation(w http.ResponseWriter, number string, count int, saveErr error) {
	result := MutationResult{
		Number: number,
		Count:  count,
		Owned:  count > 0,
		Stats:  collection.ComputeStats(h.provider.Current(), h.store),
	}
	if saveErr != nil {
		log.Printf("Ownership save failed: %v", saveErr)
		result.Warning = "owned counts could not be saved; changes may be lost when the server stops"
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventCollectionUpdated, Data: result})
	response.Success(w, result)
}

// ResetResult is returned by a reset-all and carried on the replacement
// broadcast.
type ResetResult struct {
	Stats   collection.Stats `json:"stats"`
	Warning string           `json:"warning,omitempty"`
}

// Reset clears every owned count. The client confirms destructive intent
// before calling.
func (h *CollectionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	saveErr := h.store.Reset(r.Context())

	result := ResetResult{
		Stats: collection.ComputeStats(h.provider.Current(), h.store),
	}
	if saveErr != nil {
		log.Printf("Ownership save failed: %v", saveErr)
		result.Warning = "owned counts could not be saved; changes may be lost when the server stops"
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventCollectionReplaced, Data: result})
	response.Success(w, result)
}

// GetStats returns overall completion statistics.
func (h *CollectionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, collection.ComputeStats(h.provider.Current(), h.store))
}

// GetProductStats returns completion statistics broken down by product.
func (h *CollectionHandler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, collection.ComputeProductStats(h.provider.Current(), h.store))
}

// GetStatsChart renders the completion statistics as an HTML chart page.
func (h *CollectionHandler) GetStatsChart(w http.ResponseWriter, r *http.Request) {
	cat := h.provider.Current()
	overall := collection.ComputeStats(cat, h.store)
	byProduct := collection.ComputeProductStats(cat, h.store)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderCompletion(overall, byProduct, charts.DefaultConfig(), w); err != nil {
		log.Printf("Chart render error: %v", err)
	}
}
