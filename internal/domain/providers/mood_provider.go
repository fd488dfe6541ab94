package providers

import (
	"context"
	"errors"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// Provider-reported AI failures, distinct from transport errors so handlers
// can surface specific messages.
var (
	ErrAIRateLimited      = errors.New("ai rate limit exceeded")
	ErrAICreditsExhausted = errors.New("ai credits exhausted")
)

// MoodIntelligenceProvider is the AI completion boundary. Implementations
// must tolerate malformed model output: AnalyzeReviews falls back to the
// neutral equal-weighted distribution rather than failing.
type MoodIntelligenceProvider interface {
	// AnalyzeReviews classifies review sentiment into mood scores
	AnalyzeReviews(ctx context.Context, reviews []*entities.Review) (entities.MoodScores, error)

	// RecommendFilters suggests filter combinations for a user profile
	RecommendFilters(ctx context.Context, profile RecommendationProfile) ([]RecommendedFilter, error)
}

// FavoriteCafeSummary is the slice of a favorited cafe shared with the AI.
type FavoriteCafeSummary struct {
	Name        string   `json:"name"`
	Atmosphere  []string `json:"atmosphere"`
	Specialties []string `json:"specialties"`
	PriceRange  string   `json:"price_range"`
	Mood        string   `json:"mood,omitempty"`
}

// RecommendationProfile aggregates the signals fed to the recommender.
type RecommendationProfile struct {
	Favorites   []FavoriteCafeSummary      `json:"favorites"`
	RecentViews []map[string]any           `json:"recent_views"`
	Preferences *entities.UserPreferences  `json:"preferences,omitempty"`
}

// RecommendedFilter is one filter combination suggested by the AI.
type RecommendedFilter struct {
	Atmosphere string `json:"atmosphere,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
	Mood       string `json:"mood,omitempty"`
}
