package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/moodbrew/cafe-discovery/internal/adapters/database"
	"github.com/moodbrew/cafe-discovery/internal/adapters/search"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/typesense"
	"github.com/moodbrew/cafe-discovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init search schema: %v", err)
		}
	}

	cafeRepo := database.NewCafeAdapter(pgClient)
	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				analytics_events,
				cafe_mood_analysis,
				favorites,
				menu_items,
				reviews,
				user_preferences,
				cafes
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	rating := func(v float64) *float64 { return &v }

	cafes := []entities.Cafe{
		{
			ID:          uuid.New().String(),
			Name:        "Fog Lifter Coffee",
			Description: "Third-wave roastery with single-origin pour overs",
			Address:     "480 Hayes St, San Francisco, CA",
			Location:    entities.Location{Latitude: 37.7765, Longitude: -122.4241},
			PriceRange:  entities.PriceTierMedium,
			Rating:      rating(4.6),
			ReviewCount: 312,
			CrowdLevel:  entities.CrowdLevelMedium,
			IsOpen:      true,
			WifiSpeed:   "Fast WiFi",
			Atmosphere:  []string{"calm", "study-friendly"},
			Specialties: []string{"Pour Over", "Single Origin"},
			Amenities:   []string{"WiFi", "Outlets"},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			Name:        "Mission Grind",
			Description: "Busy espresso bar with house-baked conchas",
			Address:     "2301 Mission St, San Francisco, CA",
			Location:    entities.Location{Latitude: 37.7599, Longitude: -122.4189},
			PriceRange:  entities.PriceTierLow,
			Rating:      rating(4.3),
			ReviewCount: 587,
			CrowdLevel:  entities.CrowdLevelHigh,
			IsOpen:      true,
			WifiSpeed:   "Good WiFi",
			Atmosphere:  []string{"lively"},
			Specialties: []string{"Espresso", "Pastries"},
			Amenities:   []string{"WiFi", "Outdoor Seating"},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			Name:        "Candlewick Cafe",
			Description: "Dim-lit wine-and-coffee spot for slow evenings",
			Address:     "1789 Union St, San Francisco, CA",
			Location:    entities.Location{Latitude: 37.7985, Longitude: -122.4276},
			PriceRange:  entities.PriceTierHigh,
			Rating:      rating(4.8),
			ReviewCount: 203,
			CrowdLevel:  entities.CrowdLevelLow,
			IsOpen:      true,
			WifiSpeed:   "No WiFi",
			Atmosphere:  []string{"romantic", "calm"},
			Specialties: []string{"Mocha", "Dessert"},
			Amenities:   []string{"Reservations"},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			Name:        "Ledger & Bean",
			Description: "Quiet library-style workspace cafe near the civic center",
			Address:     "55 Grove St, San Francisco, CA",
			Location:    entities.Location{Latitude: 37.7785, Longitude: -122.4177},
			PriceRange:  entities.PriceTierMedium,
			Rating:      rating(4.4),
			ReviewCount: 441,
			CrowdLevel:  entities.CrowdLevelMedium,
			IsOpen:      true,
			WifiSpeed:   "Fast WiFi",
			Atmosphere:  []string{"study-friendly", "calm"},
			Specialties: []string{"Cold Brew", "Matcha"},
			Amenities:   []string{"WiFi", "Outlets", "Quiet Zone"},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			ID:          uuid.New().String(),
			Name:        "Dockside Drip",
			Description: "Harbor-view counter known for weekend crowds and live sets",
			Address:     "9 Pier 39, San Francisco, CA",
			Location:    entities.Location{Latitude: 37.8087, Longitude: -122.4098},
			PriceRange:  entities.PriceTierMedium,
			Rating:      rating(4.1),
			ReviewCount: 719,
			CrowdLevel:  entities.CrowdLevelHigh,
			IsOpen:      true,
			WifiSpeed:   "Good WiFi",
			Atmosphere:  []string{"lively", "romantic"},
			Specialties: []string{"Latte", "Breakfast"},
			Amenities:   []string{"WiFi", "Live Music"},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	menuTemplates := []entities.MenuItem{
		{Name: "Espresso", Description: "Double shot", Price: 3.50, Category: "Coffee"},
		{Name: "Latte", Description: "With house-made oat milk", Price: 5.25, Category: "Coffee"},
		{Name: "Cold Brew", Description: "Steeped 18 hours", Price: 4.75, Category: "Coffee"},
		{Name: "Croissant", Description: "Baked each morning", Price: 4.00, Category: "Pastries"},
		{Name: "Avocado Toast", Description: "Sourdough, chili flake", Price: 9.50, Category: "Food"},
	}

	db := pgClient.DB()

	for i := range cafes {
		cafe := cafes[i]
		if err := cafeRepo.Create(ctx, &cafe); err != nil {
			log.Printf("Failed to create cafe %s: %v", cafe.Name, err)
			continue
		}

		if searchRepo != nil {
			if err := searchRepo.Index(ctx, &cafe); err != nil {
				log.Printf("Failed to index cafe %s: %v", cafe.Name, err)
			}
		}

		// Each cafe carries a subset of the shared menu for variety
		for j, item := range menuTemplates {
			if (i+j)%5 == 4 {
				continue
			}
			_, err := db.ExecContext(
				ctx,
				`INSERT INTO menu_items (id, cafe_id, name, description, price, category, is_available, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, true, NOW())`,
				uuid.New().String(),
				cafe.ID,
				item.Name,
				item.Description,
				item.Price,
				item.Category,
			)
			if err != nil {
				log.Printf("Failed to add menu item %s to cafe %s: %v", item.Name, cafe.Name, err)
			}
		}
	}

	log.Printf("Seeding completed successfully with %d cafes", len(cafes))
}
