// Package main runs the Card Binder server: a local backend tracking owned
// counts for a fixed card catalog, serving the gallery page and its API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ktanahashi/cardbinder/internal/api"
	"github.com/ktanahashi/cardbinder/internal/api/websocket"
	"github.com/ktanahashi/cardbinder/internal/catalog"
	"github.com/ktanahashi/cardbinder/internal/collection"
	"github.com/ktanahashi/cardbinder/internal/config"
	"github.com/ktanahashi/cardbinder/internal/storage"
	"github.com/ktanahashi/cardbinder/internal/version"
)

var (
	port        = flag.Int("port", 0, "Server port (overrides config)")
	dbPath      = flag.String("db-path", "", "Database path (overrides config)")
	catalogPath = flag.String("catalog", "", "Catalog JSON file (overrides config)")
	noBrowser   = flag.Bool("no-browser", false, "Do not open the gallery page on startup")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}
	if *noBrowser {
		cfg.Server.OpenBrowser = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	finalDBPath := cfg.Database.Path
	if finalDBPath == "" {
		finalDBPath, err = config.DefaultDatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}

	fmt.Printf("Card Binder %s\n", version.GetVersion())
	fmt.Println("===========")
	fmt.Printf("Catalog:  %s\n", cfg.Catalog.Path)
	fmt.Printf("Database: %s\n", finalDBPath)

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	storageService := storage.NewService(db)

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d cards", cat.Len())
	provider := catalog.NewProvider(cat)

	ctx := context.Background()

	store := collection.NewStore(storageService)
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load ownership data: %v", err)
	}

	services := &api.Services{
		Catalog:   provider,
		Store:     store,
		Storage:   storageService,
		ImagesDir: cfg.Images.Dir,
	}
	server := api.NewServer(&api.Config{
		Port:        cfg.Server.Port,
		OpenBrowser: cfg.Server.OpenBrowser,
	}, services)

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	var watcher *catalog.Watcher
	if cfg.Catalog.Watch {
		watcher, err = catalog.NewWatcher(cfg.Catalog.Path, func(fresh *catalog.Catalog) {
			provider.Swap(fresh)
			server.Hub().Broadcast(websocket.Event{Type: websocket.EventCatalogReloaded})
		})
		if err != nil {
			log.Printf("Catalog watching disabled: %v", err)
		} else {
			watcher.Start()
		}
	}

	fmt.Println()
	fmt.Printf("Gallery at http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			log.Printf("Error closing catalog watcher: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("Server stopped.")
}
