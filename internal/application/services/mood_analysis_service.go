package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// moodAnalysisMaxAge is how long a stored analysis is served before the AI is
// consulted again.
const moodAnalysisMaxAge = 7 * 24 * time.Hour

const noReviewsMessage = "No reviews yet; showing a neutral mood profile"

// MoodAnalysisService classifies a cafe's review sentiment into mood scores.
// Fresh stored analyses are reused; a cafe without reviews gets the neutral
// profile without an AI call.
type MoodAnalysisService struct {
	analyses repositories.MoodAnalysisRepository
	reviews  repositories.ReviewRepository
	cafes    repositories.CafeRepository
	ai       providers.MoodIntelligenceProvider
	eventBus providers.EventBus

	now func() time.Time
}

// NewMoodAnalysisService creates a new mood analysis service. eventBus may be nil.
func NewMoodAnalysisService(
	analyses repositories.MoodAnalysisRepository,
	reviews repositories.ReviewRepository,
	cafes repositories.CafeRepository,
	ai providers.MoodIntelligenceProvider,
	eventBus providers.EventBus,
) *MoodAnalysisService {
	return &MoodAnalysisService{
		analyses: analyses,
		reviews:  reviews,
		cafes:    cafes,
		ai:       ai,
		eventBus: eventBus,
		now:      time.Now,
	}
}

// Analyze returns the mood analysis for a cafe, running the AI classification
// only when no sufficiently fresh stored result exists.
func (s *MoodAnalysisService) Analyze(ctx context.Context, cafeID string) (*entities.MoodAnalysis, error) {
	if stored, err := s.analyses.GetByCafe(ctx, cafeID); err == nil {
		if stored.IsFresh(moodAnalysisMaxAge, s.now()) {
			return stored, nil
		}
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	reviews, err := s.reviews.ListByCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		analysis := &entities.MoodAnalysis{
			CafeID:       cafeID,
			Scores:       entities.NeutralMoodScores(),
			DominantMood: entities.MoodNeutral,
			ReviewCount:  0,
			AnalyzedAt:   s.now().UTC(),
			Message:      noReviewsMessage,
		}
		if err := s.analyses.Upsert(ctx, analysis); err != nil {
			return nil, err
		}
		return analysis, nil
	}

	if s.ai == nil {
		return nil, apperrors.NewExternalError("mood analysis is not configured", nil)
	}

	scores, err := s.ai.AnalyzeReviews(ctx, reviews)
	if err != nil {
		return nil, err
	}

	analysis := &entities.MoodAnalysis{
		CafeID:       cafeID,
		Scores:       scores,
		DominantMood: scores.Dominant(),
		ReviewCount:  len(reviews),
		AnalyzedAt:   s.now().UTC(),
	}

	if err := s.analyses.Upsert(ctx, analysis); err != nil {
		return nil, err
	}

	if err := s.cafes.UpdateMoodClassification(ctx, cafeID, analysis.DominantMood); err != nil {
		log.Printf("Warning: failed to update mood classification for cafe %s: %v", cafeID, err)
	}

	s.publishMoodUpdate(analysis)

	return analysis, nil
}

func (s *MoodAnalysisService) publishMoodUpdate(analysis *entities.MoodAnalysis) {
	if s.eventBus == nil {
		return
	}

	payload, _ := json.Marshal(map[string]any{
		"dominant_mood": analysis.DominantMood,
		"mood_score":    analysis.Scores,
	})
	event := &entities.CafeEvent{
		ID:        uuid.NewString(),
		CafeID:    analysis.CafeID,
		Type:      entities.CafeEventMoodUpdated,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.eventBus.Publish(bgCtx, providers.GetCafeChannel(analysis.CafeID), event); err != nil {
			log.Printf("Warning: failed to publish mood update for cafe %s: %v", analysis.CafeID, err)
		}
		if err := s.eventBus.Publish(bgCtx, providers.EventChannelCafeUpdates, event); err != nil {
			log.Printf("Warning: failed to publish mood update: %v", err)
		}
	}()
}
