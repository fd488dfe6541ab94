package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// AnalyticsRepository defines the interface for analytics event operations.
type AnalyticsRepository interface {
	// LogEvent appends an analytics event
	LogEvent(ctx context.Context, event *entities.AnalyticsEvent) error

	// ListRecentByUser retrieves a user's most recent events of one type,
	// newest first
	ListRecentByUser(ctx context.Context, userID, eventType string, limit int) ([]*entities.AnalyticsEvent, error)
}
