// Package api serves the tracker's HTTP surface: the gallery page, the JSON
// API the page talks to, card images, and the WebSocket event stream.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ktanahashi/cardbinder/internal/api/websocket"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
	"github.com/ktanahashi/cardbinder/internal/storage"
)

// Services bundles the application components the handlers work against.
type Services struct {
	Catalog   *catalog.Provider
	Store     *collection.Store
	Storage   *storage.Service
	ImagesDir string
}

// Config holds configuration for the API server.
type Config struct {
	Port        int
	OpenBrowser bool // auto-open the gallery page on startup
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:        8480,
		OpenBrowser: true,
	}
}

// Server is the tracker's HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int

	openBrowser bool

	hub      *websocket.Hub
	services *Services
}

// NewServer creates a new server over the given services.
func NewServer(cfg *Config, services *Services) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		router:      chi.NewRouter(),
		port:        cfg.Port,
		openBrowser: cfg.OpenBrowser,
		hub:         websocket.NewHub(),
		services:    services,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Hub returns the WebSocket hub, so other components (the catalog watcher)
// can broadcast events.
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

// Start starts the server in a goroutine.
func (s *Server) Start() error {
	go s.hub.Run()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost:%d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	if s.openBrowser {
		url := fmt.Sprintf("http://localhost:%d/", s.port)
		go func() {
			// Give the listener a moment before pointing a browser at it.
			time.Sleep(500 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				log.Printf("Failed to open browser: %v", err)
			}
		}()
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
