package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"soap-storefront/internal/config"
	"soap-storefront/internal/logging"
	"soap-storefront/internal/services"
)

const sampleSize = 5

func main() {
	fmt.Println("🔍 Checking storefront API")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level)
	api := services.NewAPIClient(cfg.API, log)
	fmt.Printf("   API: %s\n", api.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := services.NewProductService(api).List(ctx)
	if err != nil {
		log.WithError(err).Fatal("Product catalog unavailable")
	}
	fmt.Printf("📦 Products: %d\n", len(products))
	for i, p := range products {
		if i == sampleSize {
			fmt.Printf("   ... and %d more\n", len(products)-sampleSize)
			break
		}
		fmt.Printf("   %s (%s, stock %d)\n", p.Name, p.Category, p.Stock)
	}

	announcements, err := services.NewAnnouncementService(api).ListActive(ctx)
	if err != nil {
		log.WithError(err).Fatal("Announcements unavailable")
	}
	fmt.Printf("📣 Active announcements: %d\n", len(announcements))

	fmt.Println("✅ API reachable")
}
