package providers

import (
	"context"
	"errors"
)

// ErrNoResults is returned when a free-text lookup succeeds but matches
// nothing. It is distinct from transport errors so callers can show a
// "not found" message instead of a generic failure.
var ErrNoResults = errors.New("no results for location query")

// GeolocationProvider resolves free-text location strings to coordinates.
type GeolocationProvider interface {
	// Geocode converts a free-text address to its best-ranked location.
	// Only the first result of the underlying lookup is used.
	Geocode(ctx context.Context, address string) (*GeocodedLocation, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodedLocation is a resolved free-text location.
type GeocodedLocation struct {
	DisplayName string      `json:"display_name"`
	Coordinates Coordinates `json:"coordinates"`
}
