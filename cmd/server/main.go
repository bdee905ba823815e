package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/feirapp/backend/config"
	httpDelivery "github.com/feirapp/backend/internal/delivery/http"
	"github.com/feirapp/backend/internal/infrastructure/cache"
	"github.com/feirapp/backend/internal/infrastructure/catalog"
	"github.com/feirapp/backend/internal/infrastructure/feed"
	"github.com/feirapp/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Feira Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Search cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	store := catalog.NewStore()
	searchCache := cache.NewMemory()

	feedClient := feed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout, cfg.Feed.RatePerMinute, cfg.Feed.Burst)
	if cfg.Server.Environment == "development" {
		feedClient.SetDebug(true)
		log.Printf("Feed client debug mode enabled")
	}

	loader := usecase.NewCatalogLoader(feedClient, store, searchCache)

	// One-shot initial load. A failed or hanging feed must not block
	// startup: the empty store keeps serving (searches return nothing,
	// lookups miss) until a reload succeeds.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := loader.Reload(ctx); err != nil {
			log.Printf("[FEED] initial catalog load failed: %v", err)
		}
	}()

	// Initialize usecase layer
	searchService := usecase.NewSearchService(store, searchCache, usecase.SearchConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Server.Environment == "development",
	})
	costingService := usecase.NewCostingService(store)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, costingService, store, loader)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
