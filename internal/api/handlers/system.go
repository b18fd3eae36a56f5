package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ktanahashi/cardbinder/internal/api/response"
	"github.com/ktanahashi/cardbinder/internal/api/websocket"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
	"github.com/ktanahashi/cardbinder/internal/storage"
)

// SystemHandler handles backup and restore of the ownership data.
type SystemHandler struct {
	provider *catalog.Provider
	store    *collection.Store
	storage  *storage.Service
	hub      *websocket.Hub
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(provider *catalog.Provider, store *collection.Store, svc *storage.Service, hub *websocket.Hub) *SystemHandler {
	return &SystemHandler{provider: provider, store: store, storage: svc, hub: hub}
}

// Backup streams a password-protected backup of the ownership slot as a
// download. The password comes from the form field "password".
func (h *SystemHandler) Backup(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	if password == "" {
		response.BadRequest(w, errors.New("backup password is required"))
		return
	}

	name := fmt.Sprintf("cardbinder_backup_%s.cbk", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := h.storage.CreateSlotBackup(r.Context(), w, collection.SlotKey, password); err != nil {
		// Headers are out; all that is left is logging.
		log.Printf("Backup failed: %v", err)
	}
}

// RestoreResult reports a completed restore.
type RestoreResult struct {
	Stats collection.Stats `json:"stats"`
}

// Restore replaces the ownership data from an uploaded backup file ("file"
// field, "password" field). State is untouched unless the whole backup
// decrypts cleanly.
func (h *SystemHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.BadRequest(w, fmt.Errorf("failed to parse upload: %w", err))
		return
	}

	password := r.FormValue("password")
	if password == "" {
		response.BadRequest(w, errors.New("backup password is required"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, errors.New("upload is missing the \"file\" field"))
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing upload: %v", err)
		}
	}()

	if err := h.storage.RestoreSlotBackup(r.Context(), file, collection.SlotKey, password); err != nil {
		response.BadRequest(w, err)
		return
	}

	// The slot changed under the store; reload it into memory.
	if err := h.store.Load(r.Context()); err != nil {
		response.InternalError(w, err)
		return
	}

	result := RestoreResult{Stats: collection.ComputeStats(h.provider.Current(), h.store)}
	h.hub.Broadcast(websocket.Event{Type: websocket.EventCollectionReplaced, Data: result})
	response.Success(w, result)
}
