package geolocation

import "github.com/moodbrew/cafe-discovery/internal/domain/providers"

// PresetLocation is a curated fallback city for when neither the device
// sensor nor geocoding can produce a position.
type PresetLocation struct {
	Name        string                `json:"name"`
	Coordinates providers.Coordinates `json:"coordinates"`
}

// PresetLocations returns the curated fallback cities in display order.
func PresetLocations() []PresetLocation {
	return []PresetLocation{
		{Name: "San Francisco, CA", Coordinates: providers.Coordinates{Latitude: 37.7749, Longitude: -122.4194}},
		{Name: "New York, NY", Coordinates: providers.Coordinates{Latitude: 40.7128, Longitude: -74.0060}},
		{Name: "Los Angeles, CA", Coordinates: providers.Coordinates{Latitude: 34.0522, Longitude: -118.2437}},
		{Name: "Chicago, IL", Coordinates: providers.Coordinates{Latitude: 41.8781, Longitude: -87.6298}},
	}
}
