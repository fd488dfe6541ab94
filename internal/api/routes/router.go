package routes

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/moodbrew/cafe-discovery/internal/api/handlers"
	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	cafeHandler           *handlers.CafeHandler
	reviewHandler         *handlers.ReviewHandler
	favoriteHandler       *handlers.FavoriteHandler
	moodHandler           *handlers.MoodHandler
	placesHandler         *handlers.PlacesHandler
	geolocationHandler    *handlers.GeolocationHandler
	recommendationHandler *handlers.RecommendationHandler
	analyticsHandler      *handlers.AnalyticsHandler

	authProvider    providers.AuthProvider
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// NewRouter creates a new router
func NewRouter(
	cafeHandler *handlers.CafeHandler,
	reviewHandler *handlers.ReviewHandler,
	favoriteHandler *handlers.FavoriteHandler,
	moodHandler *handlers.MoodHandler,
	placesHandler *handlers.PlacesHandler,
	geolocationHandler *handlers.GeolocationHandler,
	recommendationHandler *handlers.RecommendationHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	authProvider providers.AuthProvider,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		cafeHandler:           cafeHandler,
		reviewHandler:         reviewHandler,
		favoriteHandler:       favoriteHandler,
		moodHandler:           moodHandler,
		placesHandler:         placesHandler,
		geolocationHandler:    geolocationHandler,
		recommendationHandler: recommendationHandler,
		analyticsHandler:      analyticsHandler,
		authProvider:          authProvider,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
		allowedOrigins:        allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Cafe endpoints
	r.mux.HandleFunc("GET /api/cafes", r.cafeHandler.ListCafes)
	r.mux.HandleFunc("GET /api/cafes/{id}", r.cafeHandler.GetCafe)
	r.mux.HandleFunc("GET /api/cafes/{id}/menu", r.cafeHandler.GetCafeMenu)
	r.mux.HandleFunc("GET /api/cafes/{id}/mood", r.moodHandler.GetCafeMood)

	// Review endpoints
	r.mux.HandleFunc("GET /api/cafes/{id}/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("POST /api/cafes/{id}/reviews", r.reviewHandler.CreateReview)

	// Favorite endpoints
	r.mux.HandleFunc("GET /api/favorites", r.favoriteHandler.ListFavorites)
	r.mux.HandleFunc("POST /api/favorites/{cafeId}/toggle", r.favoriteHandler.ToggleFavorite)

	// External places endpoints
	r.mux.HandleFunc("GET /api/places/nearby", r.placesHandler.NearbyCafes)

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /api/locations/presets", r.geolocationHandler.ListPresets)

	// Recommendation endpoints
	r.mux.HandleFunc("GET /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Analytics endpoints
	r.mux.HandleFunc("POST /api/analytics/events", r.analyticsHandler.TrackEvent)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.AuthMiddleware(r.authProvider)(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	c := cors.New(cors.Options{
		AllowedOrigins:   r.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	})
	handler = c.Handler(handler)

	return handler
}
