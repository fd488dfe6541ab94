package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
)

// AnalyticsService records user interaction events. Writes run in the
// background and never block or fail the originating request.
type AnalyticsService struct {
	repo repositories.AnalyticsRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo repositories.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Track stores an event in the background.
func (s *AnalyticsService) Track(ctx context.Context, userID *string, eventType string, cafeID *string, data json.RawMessage) {
	event := &entities.AnalyticsEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		CafeID:    cafeID,
		EventData: data,
		CreatedAt: time.Now().UTC(),
	}

	// Execute in background to not block the user request
	go func() {
		// Use a fresh context since the request context might be cancelled
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(bgCtx, event); err != nil {
			log.Printf("Warning: failed to log %s event: %v", eventType, err)
		}
	}()
}

// RecentCafeViews retrieves a user's most recent cafe_view events.
func (s *AnalyticsService) RecentCafeViews(ctx context.Context, userID string, limit int) ([]*entities.AnalyticsEvent, error) {
	return s.repo.ListRecentByUser(ctx, userID, entities.EventCafeView, limit)
}
