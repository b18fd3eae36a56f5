package catalog

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog file when it changes on disk and hands the
// fresh catalog to the callback. Editors replace files with rename/create
// sequences, so the watcher watches the parent directory and filters events
// down to the catalog file itself.
type Watcher struct {
	path     string
	onReload func(*Catalog)
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher for the catalog file at path. onReload is
// invoked with every successfully loaded catalog; load failures are logged
// and the previous catalog stays in effect.
func NewWatcher(path string, onReload func(*Catalog)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			log.Printf("Error closing catalog watcher: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	return &Watcher{
		path:     path,
		onReload: onReload,
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the watch loop until Close is called.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	// Small settle delay so a half-written file is not parsed mid-save.
	const settle = 200 * time.Millisecond

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			time.Sleep(settle)

			cat, err := LoadFile(w.path)
			if err != nil {
				log.Printf("Catalog reload skipped: %v", err)
				continue
			}
			log.Printf("Catalog reloaded from %s (%d cards)", w.path, cat.Len())
			w.onReload(cat)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Catalog watcher error: %v", err)
		}
	}
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close catalog watcher: %w", err)
	}
	return nil
}
