// Package web serves the embedded gallery page. The page is a thin view:
// every decision about what to show comes from the API, and live patches
// arrive over the WebSocket stream.
package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed index.html
var content embed.FS

var indexTemplate = template.Must(template.ParseFS(content, "index.html"))

type indexData struct {
	Title string
}

// Index serves the gallery page.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Title: "Card Binder"}); err != nil {
		log.Printf("Page render error: %v", err)
	}
}
