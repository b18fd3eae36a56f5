package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ktanahashi/cardbinder/internal/gallery"
)

// ImageHandler serves card image assets with the defined fallback: a missing
// primary image serves the default card asset instead.
type ImageHandler struct {
	dir string
}

// NewImageHandler creates an ImageHandler serving files from dir.
func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// GetImage serves one image by file name. Unknown names fall back to the
// default asset; a missing default is a plain 404.
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	// The name is a single path element; anything else is a traversal
	// attempt.
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.dir, name)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(h.dir, gallery.FallbackImage)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	http.ServeFile(w, r, path)
}
