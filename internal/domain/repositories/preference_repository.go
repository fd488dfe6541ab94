package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// PreferenceRepository defines the interface for user preference reads.
type PreferenceRepository interface {
	// GetByUser retrieves a user's stored preferences
	GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error)
}
