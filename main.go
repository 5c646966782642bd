package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"vanestimate/handlers"
	"vanestimate/services"
)

// Config holds all environment-based configuration.
type Config struct {
	Port        string
	CatalogURL  string
	FallbackURL string
}

func loadConfig() Config {
	return Config{
		Port:        envOr("PORT", "8080"),
		CatalogURL:  os.Getenv("CATALOG_URL"),
		FallbackURL: os.Getenv("FALLBACK_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load .env in development; in production variables are set directly.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf(".env not loaded, using system environment: %v", err)
		}
	}

	cfg := loadConfig()

	loader := &services.Loader{
		Client:      &http.Client{Timeout: 30 * time.Second},
		PrimaryURL:  cfg.CatalogURL,
		FallbackURL: cfg.FallbackURL,
		Snapshot:    fallbackSnapshot,
	}

	result := loader.Load(context.Background())
	if result.Err != nil {
		log.Printf("catalog load failed (%s): %v", result.Source, result.Err)
	} else {
		log.Printf("catalog loaded from %s source: %d sections, %d van types",
			result.Source, len(result.Catalog.Sections), len(result.Catalog.VanTypes))
	}

	server := handlers.NewServer(result)

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("estimator listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Routes()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// fallbackSnapshot is the embedded pre-normalized catalog used when no
// source can be fetched and no fallback URL is configured.
var fallbackSnapshot = []byte(`{
  "defaultLaborRate": 110,
  "taxRate": 8.25,
  "sections": [
    {
      "name": "Flooring",
      "items": [
        {"product": "Lonseal Vinyl Flooring", "materialCost": 425, "laborHours": 3.5, "compatible": ["promaster", "sprinter"]},
        {"product": "Baltic Birch Subfloor", "materialCost": 310, "laborHours": 2, "compatible": ["promaster", "transit"]}
      ]
    },
    {
      "name": "Electrical",
      "items": [
        {"product": "200Ah Lithium Battery", "materialCost": 950, "laborHours": 1.25, "compatible": ["promaster", "sprinter", "transit"]},
        {"product": "12V Fuse Block", "materialCost": 64.99, "laborHours": 0.75, "compatible": ["sprinter"]}
      ]
    }
  ]
}`)
