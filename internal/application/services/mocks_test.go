package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
)

type mockCafeRepository struct {
	mock.Mock
}

func (m *mockCafeRepository) Create(ctx context.Context, cafe *entities.Cafe) error {
	return m.Called(ctx, cafe).Error(0)
}

func (m *mockCafeRepository) GetByID(ctx context.Context, id string) (*entities.Cafe, error) {
	args := m.Called(ctx, id)
	if cafe, ok := args.Get(0).(*entities.Cafe); ok {
		return cafe, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCafeRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Cafe, error) {
	args := m.Called(ctx, ids)
	if cafes, ok := args.Get(0).([]*entities.Cafe); ok {
		return cafes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCafeRepository) Update(ctx context.Context, cafe *entities.Cafe) error {
	return m.Called(ctx, cafe).Error(0)
}

func (m *mockCafeRepository) UpdateRating(ctx context.Context, id string, rating *float64, reviewCount int) error {
	return m.Called(ctx, id, rating, reviewCount).Error(0)
}

func (m *mockCafeRepository) UpdateMoodClassification(ctx context.Context, id string, mood string) error {
	return m.Called(ctx, id, mood).Error(0)
}

func (m *mockCafeRepository) List(ctx context.Context, filter repositories.CafeFilter) ([]*entities.Cafe, error) {
	args := m.Called(ctx, filter)
	if cafes, ok := args.Get(0).([]*entities.Cafe); ok {
		return cafes, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCafeSearchRepository struct {
	mock.Mock
}

func (m *mockCafeSearchRepository) Search(ctx context.Context, params repositories.CafeSearchParams) ([]*entities.Cafe, error) {
	args := m.Called(ctx, params)
	if cafes, ok := args.Get(0).([]*entities.Cafe); ok {
		return cafes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCafeSearchRepository) Index(ctx context.Context, cafe *entities.Cafe) error {
	return m.Called(ctx, cafe).Error(0)
}

func (m *mockCafeSearchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) ListByCafe(ctx context.Context, cafeID string) ([]*entities.Review, error) {
	args := m.Called(ctx, cafeID)
	if reviews, ok := args.Get(0).([]*entities.Review); ok {
		return reviews, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepository) RatingStats(ctx context.Context, cafeID string) (int, float64, error) {
	args := m.Called(ctx, cafeID)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

type mockFavoriteRepository struct {
	mock.Mock
}

func (m *mockFavoriteRepository) Add(ctx context.Context, favorite *entities.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *mockFavoriteRepository) Remove(ctx context.Context, userID, cafeID string) error {
	return m.Called(ctx, userID, cafeID).Error(0)
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID, cafeID string) (bool, error) {
	args := m.Called(ctx, userID, cafeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepository) ListCafeIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMoodAnalysisRepository struct {
	mock.Mock
}

func (m *mockMoodAnalysisRepository) GetByCafe(ctx context.Context, cafeID string) (*entities.MoodAnalysis, error) {
	args := m.Called(ctx, cafeID)
	if analysis, ok := args.Get(0).(*entities.MoodAnalysis); ok {
		return analysis, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMoodAnalysisRepository) Upsert(ctx context.Context, analysis *entities.MoodAnalysis) error {
	return m.Called(ctx, analysis).Error(0)
}

type mockAnalyticsRepository struct {
	mock.Mock
}

func (m *mockAnalyticsRepository) LogEvent(ctx context.Context, event *entities.AnalyticsEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockAnalyticsRepository) ListRecentByUser(ctx context.Context, userID, eventType string, limit int) ([]*entities.AnalyticsEvent, error) {
	args := m.Called(ctx, userID, eventType, limit)
	if events, ok := args.Get(0).([]*entities.AnalyticsEvent); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPreferenceRepository struct {
	mock.Mock
}

func (m *mockPreferenceRepository) GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if prefs, ok := args.Get(0).(*entities.UserPreferences); ok {
		return prefs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMoodIntelligenceProvider struct {
	mock.Mock
}

func (m *mockMoodIntelligenceProvider) AnalyzeReviews(ctx context.Context, reviews []*entities.Review) (entities.MoodScores, error) {
	args := m.Called(ctx, reviews)
	return args.Get(0).(entities.MoodScores), args.Error(1)
}

func (m *mockMoodIntelligenceProvider) RecommendFilters(ctx context.Context, profile providers.RecommendationProfile) ([]providers.RecommendedFilter, error) {
	args := m.Called(ctx, profile)
	if filters, ok := args.Get(0).([]providers.RecommendedFilter); ok {
		return filters, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGeolocationProvider struct {
	mock.Mock
}

func (m *mockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedLocation, error) {
	args := m.Called(ctx, address)
	if loc, ok := args.Get(0).(*providers.GeocodedLocation); ok {
		return loc, args.Error(1)
	}
	return nil, args.Error(1)
}
