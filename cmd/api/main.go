package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/adapters/cache"
	"github.com/moodbrew/cafe-discovery/internal/adapters/database"
	"github.com/moodbrew/cafe-discovery/internal/adapters/events"
	"github.com/moodbrew/cafe-discovery/internal/adapters/providers/auth"
	"github.com/moodbrew/cafe-discovery/internal/adapters/providers/geolocation"
	"github.com/moodbrew/cafe-discovery/internal/adapters/providers/places"
	"github.com/moodbrew/cafe-discovery/internal/adapters/search"
	"github.com/moodbrew/cafe-discovery/internal/api/handlers"
	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/api/routes"
	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/aigateway"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/redis"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/typesense"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/observability"
	"github.com/moodbrew/cafe-discovery/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	baseCafeAdapter := database.NewCafeAdapter(pgClient)

	// Wrap with caching if Redis is available
	var cafeRepo repositories.CafeRepository
	if cacheProvider != nil {
		cafeRepo = database.NewCachedCafeAdapter(baseCafeAdapter, cacheProvider)
		log.Println("Cafe adapter wrapped with caching layer")
	} else {
		cafeRepo = baseCafeAdapter
		log.Println("Cafe adapter running without cache (Redis unavailable)")
	}

	reviewRepo := database.NewReviewAdapter(pgClient)
	favoriteRepo := database.NewFavoriteAdapter(pgClient)
	menuItemRepo := database.NewMenuItemAdapter(pgClient)
	moodAnalysisRepo := database.NewMoodAnalysisAdapter(pgClient)
	analyticsRepo := database.NewAnalyticsAdapter(pgClient)
	preferenceRepo := database.NewPreferenceAdapter(pgClient)

	var searchRepo repositories.CafeSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		// Ensure schema exists
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	// Initialize providers

	geocoder := geolocation.NewNominatimProvider(cfg.Geocoding.UserAgent, cacheProvider)

	var placesProvider providers.PlacesProvider
	if cfg.Places.APIKey == "" {
		log.Println("Warning: GOOGLE_PLACES_API_KEY is not set; nearby place discovery disabled")
	} else {
		placesProvider = places.NewGoogleAdapter(cfg.Places.APIKey)
	}

	var moodAI providers.MoodIntelligenceProvider
	if cfg.AIGateway.APIKey == "" {
		log.Println("Warning: AI_GATEWAY_API_KEY is not set; mood analysis and recommendations disabled")
	} else {
		aiClient, err := aigateway.NewClient(&cfg.AIGateway)
		if err != nil {
			log.Printf("Warning: Failed to initialize AI gateway client: %v", err)
		} else {
			moodAI = aiClient
		}
	}

	authProvider := auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// The API has no device sensor; seed virtual positioning from the first
	// preset so preset and address resolution still work end to end.
	presets := geolocation.PresetLocations()
	positionProvider := geolocation.NewMockPositionProvider(presets[0].Coordinates)

	// Initialize services

	// Keep replicas consistent when ratings or moods change on another instance
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		}
	}

	// Keep the hottest cafe entries warm for first-page loads
	if cacheProvider != nil {
		warmingService := services.NewCacheWarmingService(cafeRepo, cacheProvider)
		go warmingService.StartPeriodicWarming(ctx, 5*time.Minute)
	}

	cafeQueries := services.NewCafeQueryService(cafeRepo, searchRepo)
	locationService := services.NewLocationService(positionProvider, geocoder)
	reviewService := services.NewReviewService(reviewRepo, cafeRepo, eventBus)
	favoriteService := services.NewFavoriteService(favoriteRepo, cafeRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	moodService := services.NewMoodAnalysisService(moodAnalysisRepo, reviewRepo, cafeRepo, moodAI, eventBus)
	recommendationService := services.NewRecommendationService(
		favoriteRepo,
		cafeRepo,
		preferenceRepo,
		analyticsService,
		moodAI,
	)

	// Initialize handlers

	cafeHandler := handlers.NewCafeHandler(cafeQueries, menuItemRepo)
	reviewHandler := handlers.NewReviewHandler(reviewService, analyticsService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, analyticsService)
	moodHandler := handlers.NewMoodHandler(moodService)
	placesHandler := handlers.NewPlacesHandler(placesProvider)
	geolocationHandler := handlers.NewGeolocationHandler(geocoder, locationService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		cafeHandler,
		reviewHandler,
		favoriteHandler,
		moodHandler,
		placesHandler,
		geolocationHandler,
		recommendationHandler,
		analyticsHandler,
		authProvider,
		cacheMiddleware,
		metrics,
		cfg.Server.AllowedOrigins,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	locationService.StopTracking()

	// Stop cache invalidation service
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
