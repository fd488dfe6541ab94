package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

func TestMoodAnalysisService_ReusesFreshStoredAnalysis(t *testing.T) {
	analyses := new(mockMoodAnalysisRepository)
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	ai := new(mockMoodIntelligenceProvider)

	service := services.NewMoodAnalysisService(analyses, reviews, cafes, ai, nil)

	stored := &entities.MoodAnalysis{
		CafeID:       "cafe-1",
		Scores:       entities.MoodScores{Calm: 70, Lively: 10, Romantic: 10, StudyFriendly: 10},
		DominantMood: entities.MoodCalm,
		ReviewCount:  12,
		AnalyzedAt:   time.Now().Add(-time.Hour),
	}
	analyses.On("GetByCafe", mock.Anything, "cafe-1").Return(stored, nil)

	result, err := service.Analyze(context.Background(), "cafe-1")

	assert.NoError(t, err)
	assert.Equal(t, stored, result)
	ai.AssertNotCalled(t, "AnalyzeReviews", mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "ListByCafe", mock.Anything, mock.Anything)
}

func TestMoodAnalysisService_StaleAnalysisTriggersReclassification(t *testing.T) {
	analyses := new(mockMoodAnalysisRepository)
	reviewRepo := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	ai := new(mockMoodIntelligenceProvider)

	service := services.NewMoodAnalysisService(analyses, reviewRepo, cafes, ai, nil)

	stale := &entities.MoodAnalysis{
		CafeID:     "cafe-1",
		AnalyzedAt: time.Now().Add(-8 * 24 * time.Hour),
	}
	analyses.On("GetByCafe", mock.Anything, "cafe-1").Return(stale, nil)

	reviews := []*entities.Review{
		{ID: "r1", CafeID: "cafe-1", Rating: 5, Content: "so quiet, perfect for studying"},
	}
	reviewRepo.On("ListByCafe", mock.Anything, "cafe-1").Return(reviews, nil)

	scores := entities.MoodScores{Calm: 20, Lively: 5, Romantic: 5, StudyFriendly: 70}
	ai.On("AnalyzeReviews", mock.Anything, reviews).Return(scores, nil)

	analyses.On("Upsert", mock.Anything, mock.MatchedBy(func(a *entities.MoodAnalysis) bool {
		return a.CafeID == "cafe-1" && a.DominantMood == entities.MoodStudyFriendly && a.ReviewCount == 1
	})).Return(nil)
	cafes.On("UpdateMoodClassification", mock.Anything, "cafe-1", entities.MoodStudyFriendly).Return(nil)

	result, err := service.Analyze(context.Background(), "cafe-1")

	assert.NoError(t, err)
	assert.Equal(t, entities.MoodStudyFriendly, result.DominantMood)
	assert.Equal(t, scores, result.Scores)
	analyses.AssertExpectations(t)
}

func TestMoodAnalysisService_NoReviewsYieldsNeutralWithoutAI(t *testing.T) {
	analyses := new(mockMoodAnalysisRepository)
	reviewRepo := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	ai := new(mockMoodIntelligenceProvider)

	service := services.NewMoodAnalysisService(analyses, reviewRepo, cafes, ai, nil)

	analyses.On("GetByCafe", mock.Anything, "cafe-1").
		Return(nil, apperrors.NewNotFoundError("mood analysis not found"))
	reviewRepo.On("ListByCafe", mock.Anything, "cafe-1").Return([]*entities.Review{}, nil)
	analyses.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Analyze(context.Background(), "cafe-1")

	assert.NoError(t, err)
	assert.Equal(t, entities.NeutralMoodScores(), result.Scores)
	assert.Equal(t, entities.MoodNeutral, result.DominantMood)
	assert.Equal(t, 0, result.ReviewCount)
	assert.NotEmpty(t, result.Message)
	ai.AssertNotCalled(t, "AnalyzeReviews", mock.Anything, mock.Anything)
	cafes.AssertNotCalled(t, "UpdateMoodClassification", mock.Anything, mock.Anything, mock.Anything)
}

func TestMoodAnalysisService_AIErrorPropagates(t *testing.T) {
	analyses := new(mockMoodAnalysisRepository)
	reviewRepo := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	ai := new(mockMoodIntelligenceProvider)

	service := services.NewMoodAnalysisService(analyses, reviewRepo, cafes, ai, nil)

	analyses.On("GetByCafe", mock.Anything, "cafe-1").
		Return(nil, apperrors.NewNotFoundError("mood analysis not found"))
	reviewRepo.On("ListByCafe", mock.Anything, "cafe-1").
		Return([]*entities.Review{{ID: "r1", Rating: 4}}, nil)
	ai.On("AnalyzeReviews", mock.Anything, mock.Anything).
		Return(entities.MoodScores{}, providers.ErrAIRateLimited)

	_, err := service.Analyze(context.Background(), "cafe-1")

	assert.ErrorIs(t, err, providers.ErrAIRateLimited)
	analyses.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
