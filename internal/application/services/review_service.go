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

// ReviewService handles review submission and listing. Submitting a review
// recomputes the cafe's rating aggregate and publishes a cafe update event.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	cafes    repositories.CafeRepository
	eventBus providers.EventBus
}

// NewReviewService creates a new review service. eventBus may be nil.
func NewReviewService(reviews repositories.ReviewRepository, cafes repositories.CafeRepository, eventBus providers.EventBus) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		cafes:    cafes,
		eventBus: eventBus,
	}
}

// Create validates and stores a review for the given user, then refreshes the
// cafe's rating aggregate. Unauthenticated submissions are rejected before any
// store call.
func (s *ReviewService) Create(ctx context.Context, user *entities.User, cafeID string, rating int, title, content string) (*entities.Review, error) {
	if user == nil || user.ID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to leave a review")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	// Reviews for unknown cafes are rejected with the lookup's not-found.
	if _, err := s.cafes.GetByID(ctx, cafeID); err != nil {
		return nil, err
	}

	review := &entities.Review{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CafeID:    cafeID,
		Rating:    rating,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, cafeID); err != nil {
		// The review is stored; a failed aggregate refresh self-corrects on
		// the next submission.
		log.Printf("Warning: failed to refresh rating for cafe %s: %v", cafeID, err)
	}

	return review, nil
}

// ListByCafe retrieves a cafe's reviews, newest first.
func (s *ReviewService) ListByCafe(ctx context.Context, cafeID string) ([]*entities.Review, error) {
	return s.reviews.ListByCafe(ctx, cafeID)
}

func (s *ReviewService) refreshRating(ctx context.Context, cafeID string) error {
	count, average, err := s.reviews.RatingStats(ctx, cafeID)
	if err != nil {
		return err
	}

	var rating *float64
	if count > 0 {
		rating = &average
	}
	if err := s.cafes.UpdateRating(ctx, cafeID, rating, count); err != nil {
		return err
	}

	s.publishRatingUpdate(cafeID, rating, count)
	return nil
}

func (s *ReviewService) publishRatingUpdate(cafeID string, rating *float64, count int) {
	if s.eventBus == nil {
		return
	}

	payload, _ := json.Marshal(map[string]any{
		"rating":       rating,
		"review_count": count,
	})
	event := &entities.CafeEvent{
		ID:        uuid.NewString(),
		CafeID:    cafeID,
		Type:      entities.CafeEventRatingUpdated,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.eventBus.Publish(bgCtx, providers.GetCafeChannel(cafeID), event); err != nil {
			log.Printf("Warning: failed to publish rating update for cafe %s: %v", cafeID, err)
		}
		if err := s.eventBus.Publish(bgCtx, providers.EventChannelCafeUpdates, event); err != nil {
			log.Printf("Warning: failed to publish rating update: %v", err)
		}
	}()
}
