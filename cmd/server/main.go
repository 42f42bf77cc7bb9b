// Nomel - drink pacing companion
// Entry point for the local web server
package main

import (
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/findosh/nomel/internal/config"
	"github.com/findosh/nomel/internal/handlers"
	"github.com/findosh/nomel/internal/middleware"
	"github.com/findosh/nomel/internal/models"
	"github.com/findosh/nomel/internal/services/summary"
	"github.com/findosh/nomel/internal/session"
	"github.com/findosh/nomel/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := storage.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the session store and restore prior state
	snapshotRepo := storage.NewSnapshotRepository(db)
	store := session.New(snapshotRepo, session.Config{
		TargetScore: decimal.NewFromInt(int64(cfg.TargetScore)),
		SaveDelay:   cfg.SaveDelay,
	})
	if err := store.Boot(); err != nil {
		log.Fatalf("Failed to restore session state: %v", err)
	}
	defer store.Close()

	// Load the beverage catalog
	catalog := models.DefaultCatalog()
	if cfg.PresetsPath != "" {
		loaded, err := models.LoadCatalog(cfg.PresetsPath)
		if err != nil {
			log.Printf("Preset catalog %s unusable, using built-ins: %v", cfg.PresetsPath, err)
		} else {
			catalog = loaded
		}
	}

	// Initialize handlers
	h, err := handlers.New(cfg, store, summary.NewService(), catalog)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/api/state", h.APIState)
	mux.HandleFunc("/api/history", h.APIHistory)
	mux.HandleFunc("/api/presets", h.APIPresets)
	mux.HandleFunc("/api/summary", h.APISummary)
	mux.HandleFunc("/api/drinks", h.APIDrinks)
	mux.HandleFunc("/api/hydration", h.APIHydration)
	mux.HandleFunc("/api/profile", h.APIProfile)
	mux.HandleFunc("/api/session", h.APISession)

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.Logger,
	)

	// Start server
	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Nomel server starting on http://%s", addr)
	log.Printf("Environment: %s", cfg.Environment)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
