package providers

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// PlacesProvider fetches nearby venues from an external places source.
// A zero-result response is a valid empty slice, not an error. Returned cafe
// records carry provider-specific ids and must never be merged with internal
// cafes by id.
type PlacesProvider interface {
	// NearbyCafes finds cafes within radiusMeters of the given coordinate
	NearbyCafes(ctx context.Context, center Coordinates, radiusMeters int) ([]*entities.Cafe, error)
}
