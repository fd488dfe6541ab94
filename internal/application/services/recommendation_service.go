package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

const (
	maxProfileFavorites   = 10
	maxProfileRecentViews = 20
	maxCafesPerFilter     = 5
)

// Recommendation is one AI-suggested filter combination with the cafes that
// currently match it.
type Recommendation struct {
	Filter providers.RecommendedFilter `json:"filter"`
	Cafes  []*entities.Cafe            `json:"cafes"`
}

// RecommendationService builds a taste profile from favorites, recent views,
// and stored preferences, asks the AI for filter combinations, and resolves
// each into matching cafes.
type RecommendationService struct {
	favorites   repositories.FavoriteRepository
	cafes       repositories.CafeRepository
	preferences repositories.PreferenceRepository
	analytics   *AnalyticsService
	ai          providers.MoodIntelligenceProvider
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	favorites repositories.FavoriteRepository,
	cafes repositories.CafeRepository,
	preferences repositories.PreferenceRepository,
	analytics *AnalyticsService,
	ai providers.MoodIntelligenceProvider,
) *RecommendationService {
	return &RecommendationService{
		favorites:   favorites,
		cafes:       cafes,
		preferences: preferences,
		analytics:   analytics,
		ai:          ai,
	}
}

// Recommend produces personalized filter recommendations for a signed-in user.
func (s *RecommendationService) Recommend(ctx context.Context, user *entities.User) ([]Recommendation, error) {
	if user == nil || user.ID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in for recommendations")
	}

	if s.ai == nil {
		return nil, apperrors.NewExternalError("recommendations are not configured", nil)
	}

	profile, err := s.buildProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	filters, err := s.ai.RecommendFilters(ctx, profile)
	if err != nil {
		return nil, err
	}

	recommendations := make([]Recommendation, 0, len(filters))
	for _, filter := range filters {
		cafes, err := s.matchFilter(ctx, filter)
		if err != nil {
			log.Printf("Warning: failed to match recommended filter: %v", err)
			cafes = []*entities.Cafe{}
		}
		recommendations = append(recommendations, Recommendation{Filter: filter, Cafes: cafes})
	}

	return recommendations, nil
}

func (s *RecommendationService) buildProfile(ctx context.Context, userID string) (providers.RecommendationProfile, error) {
	profile := providers.RecommendationProfile{}

	ids, err := s.favorites.ListCafeIDs(ctx, userID)
	if err != nil {
		return profile, err
	}
	if len(ids) > maxProfileFavorites {
		ids = ids[:maxProfileFavorites]
	}
	if len(ids) > 0 {
		cafes, err := s.cafes.GetByIDs(ctx, ids)
		if err != nil {
			return profile, err
		}
		for _, cafe := range cafes {
			profile.Favorites = append(profile.Favorites, providers.FavoriteCafeSummary{
				Name:        cafe.Name,
				Atmosphere:  cafe.Atmosphere,
				Specialties: cafe.Specialties,
				PriceRange:  cafe.PriceRange,
				Mood:        cafe.MoodClassification,
			})
		}
	}

	if s.analytics != nil {
		views, err := s.analytics.RecentCafeViews(ctx, userID, maxProfileRecentViews)
		if err != nil {
			// Recent views only enrich the profile; favorites alone suffice.
			log.Printf("Warning: failed to load recent views for %s: %v", userID, err)
		} else {
			for _, view := range views {
				entry := map[string]any{"event_type": view.EventType}
				if view.CafeID != nil {
					entry["cafe_id"] = *view.CafeID
				}
				if len(view.EventData) > 0 {
					var data map[string]any
					if err := json.Unmarshal(view.EventData, &data); err == nil {
						entry["data"] = data
					}
				}
				profile.RecentViews = append(profile.RecentViews, entry)
			}
		}
	}

	prefs, err := s.preferences.GetByUser(ctx, userID)
	if err == nil {
		profile.Preferences = prefs
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return profile, err
	}

	return profile, nil
}

func (s *RecommendationService) matchFilter(ctx context.Context, filter providers.RecommendedFilter) ([]*entities.Cafe, error) {
	storeFilter := repositories.CafeFilter{Limit: maxCafesPerFilter}
	if filter.Atmosphere != "" {
		storeFilter.Moods = []string{filter.Atmosphere}
	}
	if filter.PriceRange != "" {
		storeFilter.PriceTier = filter.PriceRange
	}
	cafes, err := s.cafes.List(ctx, storeFilter)
	if err != nil {
		return nil, err
	}

	if filter.Mood == "" {
		return cafes, nil
	}
	matched := make([]*entities.Cafe, 0, len(cafes))
	for _, cafe := range cafes {
		if cafe.MoodClassification == "" || cafe.MoodClassification == filter.Mood {
			matched = append(matched, cafe)
		}
	}
	return matched, nil
}
