package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// FavoriteRepository defines the interface for favorite operations. A
// favorite's existence is its only state.
type FavoriteRepository interface {
	// Add inserts a (user, cafe) favorite pair
	Add(ctx context.Context, favorite *entities.Favorite) error

	// Remove deletes a (user, cafe) favorite pair
	Remove(ctx context.Context, userID, cafeID string) error

	// Exists reports whether the pair is present
	Exists(ctx context.Context, userID, cafeID string) (bool, error)

	// ListCafeIDs retrieves the ids of a user's favorited cafes
	ListCafeIDs(ctx context.Context, userID string) ([]string, error)
}
