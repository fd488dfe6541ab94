package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations. Reviews are
// append-and-read only.
type ReviewRepository interface {
	// Create appends a review
	Create(ctx context.Context, review *entities.Review) error

	// ListByCafe retrieves a cafe's reviews, newest first
	ListByCafe(ctx context.Context, cafeID string) ([]*entities.Review, error)

	// RatingStats returns the review count and mean rating for a cafe
	RatingStats(ctx context.Context, cafeID string) (count int, average float64, err error)
}
