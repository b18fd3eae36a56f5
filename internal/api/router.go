package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/ktanahashi/cardbinder/internal/api/handlers"
	"github.com/ktanahashi/cardbinder/internal/api/response"
	"github.com/ktanahashi/cardbinder/internal/version"
	"github.com/ktanahashi/cardbinder/internal/web"
)

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.Get("/health", s.healthCheck)

	// WebSocket event stream
	s.router.Get("/ws", s.hub.ServeWs)

	// The gallery page
	s.router.Get("/", web.Index)

	// Card image assets, with the default-card fallback
	imageHandler := handlers.NewImageHandler(s.services.ImagesDir)
	s.router.Get("/cards_images/{name}", imageHandler.GetImage)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// One local user; the limiter only guards against runaway pages.
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(50), 100)))

		catalogHandler := handlers.NewCatalogHandler(s.services.Catalog, s.services.Store)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", catalogHandler.GetCards)
			r.Get("/options", catalogHandler.GetOptions)
		})

		collectionHandler := handlers.NewCollectionHandler(s.services.Catalog, s.services.Store, s.hub)
		transferHandler := handlers.NewTransferHandler(s.services.Catalog, s.services.Store, s.hub)
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.GetCollection)
			r.Put("/cards/{number}", collectionHandler.SetCount)
			r.Post("/cards/{number}/adjust", collectionHandler.AdjustCount)
			r.Post("/reset", collectionHandler.Reset)
			r.Get("/stats", collectionHandler.GetStats)
			r.Get("/stats/products", collectionHandler.GetProductStats)
			r.Get("/stats/chart", collectionHandler.GetStatsChart)
			r.Get("/export", transferHandler.Export)
			r.Post("/import", transferHandler.Import)
		})

		systemHandler := handlers.NewSystemHandler(s.services.Catalog, s.services.Store, s.services.Storage, s.hub)
		r.Route("/system", func(r chi.Router) {
			r.Post("/backup", systemHandler.Backup)
			r.Post("/restore", systemHandler.Restore)
		})
	})
}

// healthCheck reports server liveness.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}

// rateLimit applies a shared token bucket to the wrapped routes.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
