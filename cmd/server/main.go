package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopscout/backend/config"
	httpDelivery "github.com/shopscout/backend/internal/delivery/http"
	"github.com/shopscout/backend/internal/infrastructure/cache"
	"github.com/shopscout/backend/internal/infrastructure/search"
	"github.com/shopscout/backend/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	searchClient := search.NewClient(
		cfg.Search.APIKey,
		cfg.Search.EngineID,
		cfg.Search.BaseURL,
		cfg.Search.MaxResults,
		cfg.RateLimit.Search,
		cfg.Search.Timeout,
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		searchClient.SetDebug(true)
		log.Printf("Search client debug mode enabled")
	}

	if cfg.Search.Configured() {
		log.Printf("Search API configured: %s (engine: %s)", cfg.Search.BaseURL, cfg.Search.EngineID)
	} else {
		log.Printf("WARNING: search API not configured - serving fallback results only")
	}

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		memoryCache,
		searchClient,
		usecase.ComparisonServiceConfig{
			CacheTTL:      cfg.Cache.TTL,
			SearchEnabled: cfg.Search.Configured(),
			Matching: usecase.MatcherConfig{
				SameThreshold:      cfg.Matching.SameThreshold,
				BrandWeight:        cfg.Matching.BrandWeight,
				TokenWeight:        cfg.Matching.TokenWeight,
				EditWeight:         cfg.Matching.EditWeight,
				EnableDebugLogging: cfg.Matching.EnableDebugLogging,
			},
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: threshold=%.2f, weights=%.1f/%.1f/%.1f",
		cfg.Matching.SameThreshold,
		cfg.Matching.BrandWeight,
		cfg.Matching.TokenWeight,
		cfg.Matching.EditWeight)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService)

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
