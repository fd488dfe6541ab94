package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// CafeRepository defines the interface for cafe data operations
type CafeRepository interface {
	// Create creates a new cafe
	Create(ctx context.Context, cafe *entities.Cafe) error

	// GetByID retrieves a cafe by ID
	GetByID(ctx context.Context, id string) (*entities.Cafe, error)

	// GetByIDs retrieves multiple cafes by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Cafe, error)

	// Update updates a cafe
	Update(ctx context.Context, cafe *entities.Cafe) error

	// UpdateRating replaces the derived rating statistics for a cafe
	UpdateRating(ctx context.Context, id string, rating *float64, reviewCount int) error

	// UpdateMoodClassification sets the dominant mood label for a cafe
	UpdateMoodClassification(ctx context.Context, id string, mood string) error

	// List retrieves cafes matching the pushed-down filter conditions,
	// ordered by descending rating
	List(ctx context.Context, filter CafeFilter) ([]*entities.Cafe, error)
}

// CafeSearchRepository defines the interface for cafe geo-search (e.g. Typesense)
type CafeSearchRepository interface {
	// Search finds cafes near a coordinate
	Search(ctx context.Context, params CafeSearchParams) ([]*entities.Cafe, error)

	// Index indexes a cafe
	Index(ctx context.Context, cafe *entities.Cafe) error

	// Delete removes a cafe from the index
	Delete(ctx context.Context, id string) error
}

// CafeFilter holds the filter conditions the store can evaluate itself.
// Free-text OR-across-fields and distance thresholds are applied in memory
// after retrieval.
type CafeFilter struct {
	// Query matches name OR description OR address, case-insensitive substring
	Query string

	// Location matches address only, case-insensitive substring
	Location string

	// Moods filters on non-empty overlap with the atmosphere tag set
	Moods []string

	// PriceTier filters on exact tier symbol equality
	PriceTier string

	IsOpen *bool
	Limit  int
	Offset int
}

// CafeSearchParams defines parameters for geo-search
type CafeSearchParams struct {
	Query     string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
	Offset    int
}
