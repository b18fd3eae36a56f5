package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/ktanahashi/cardbinder/internal/api/response"
	"github.com/ktanahashi/cardbinder/internal/api/websocket"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
	"github.com/ktanahashi/cardbinder/internal/transfer"
)

// maxImportSize caps the accepted import body. The format is a few bytes per
// catalog card, so this is generous.
const maxImportSize = 10 << 20 // 10 MB

// TransferHandler handles bulk export and import of owned counts.
type TransferHandler struct {
	provider *catalog.Provider
	store    *collection.Store
	hub      *websocket.Hub
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(provider *catalog.Provider, store *collection.Store, hub *websocket.Hub) *TransferHandler {
	return &TransferHandler{provider: provider, store: store, hub: hub}
}

// Export serves the owned counts as a CSV download with the fixed artifact
// name. With nothing to export it answers 409 and no file is produced.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := transfer.Export(&buf, h.store.Counts())
	if errors.Is(err, transfer.ErrNothingToExport) {
		response.Conflict(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", transfer.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.ExportFilename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Export write error: %v", err)
	}
}

// ImportResult reports an import outcome. RowErrors rows were skipped; the
// valid rows were still committed.
type ImportResult struct {
	Imported  int              `json:"imported"`
	RowErrors int              `json:"rowErrors"`
	Stats     collection.Stats `json:"stats"`
	Warning   string           `json:"warning,omitempty"`
}

// Import replaces the whole ownership mapping from an uploaded CSV. The body
// is either a multipart upload with a "file" field or the raw CSV text. The
// replacement mapping is built completely before it is committed, so a
// failed or partial parse never leaves mixed state. The client confirms the
// overwrite before calling.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := importBody(w, r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	result, err := transfer.Import(body, h.provider.Current())
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	saveErr := h.store.ReplaceAll(r.Context(), result.Counts)

	out := ImportResult{
		Imported:  len(result.Counts),
		RowErrors: result.RowErrors,
		Stats:     collection.ComputeStats(h.provider.Current(), h.store),
	}
	if saveErr != nil {
		log.Printf("Ownership save failed: %v", saveErr)
		out.Warning = "owned counts could not be saved; changes may be lost when the server stops"
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventCollectionReplaced, Data: out})
	response.Success(w, out)
}

// importBody extracts the CSV reader from the request: the "file" part of a
// multipart upload, or the raw body otherwise. An oversized raw body fails
// the read instead of being truncated mid-row.
func importBody(w http.ResponseWriter, r *http.Request) (io.Reader, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, fmt.Errorf("failed to parse upload: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New("upload is missing the \"file\" field")
		}
		return file, nil
	}
	return http.MaxBytesReader(w, r.Body, maxImportSize), nil
}
