package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/pkg/geo"
)

const (
	googleNearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	defaultHTTPTimeout    = 8 * time.Second
	defaultRadiusMeters   = 1500
)

// GoogleAdapter implements PlacesProvider using the Google Places Nearby
// Search API. Results are mapped into cafe records with provider-sourced
// fields filled in and display defaults for the rest.
type GoogleAdapter struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleAdapter creates a new Google Places adapter.
func NewGoogleAdapter(apiKey string) providers.PlacesProvider {
	return NewGoogleAdapterWithOptions(apiKey, googleNearbySearchURL, nil)
}

// NewGoogleAdapterWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleAdapterWithOptions(apiKey string, baseURL string, httpClient *http.Client) providers.PlacesProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleNearbySearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleAdapter{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// NearbyCafes finds cafes within radiusMeters of the given coordinate.
// ZERO_RESULTS is a valid empty response, not an error.
func (a *GoogleAdapter) NearbyCafes(ctx context.Context, center providers.Coordinates, radiusMeters int) ([]*entities.Cafe, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("places api key is required")
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultRadiusMeters
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", "cafe")
	params.Set("key", a.apiKey)

	reqURL := fmt.Sprintf("%s?%s", a.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby search request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nearby search returned status %d", resp.StatusCode)
	}

	var payload googleNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode nearby search response: %w", err)
	}

	if payload.Status == "ZERO_RESULTS" {
		return []*entities.Cafe{}, nil
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("nearby search failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("nearby search failed: %s", payload.Status)
	}

	cafes := make([]*entities.Cafe, 0, len(payload.Results))
	for _, result := range payload.Results {
		cafes = append(cafes, a.mapResult(result, center))
	}

	return cafes, nil
}

// mapResult converts a nearby search result into a cafe record. Fields the
// places API does not carry get display defaults so provider results render
// alongside internal cafes.
func (a *GoogleAdapter) mapResult(result googleNearbyResult, center providers.Coordinates) *entities.Cafe {
	lat := result.Geometry.Location.Lat
	lon := result.Geometry.Location.Lng
	distance := geo.Distance(center.Latitude, center.Longitude, lat, lon)

	isOpen := true
	if result.OpeningHours != nil && result.OpeningHours.OpenNow != nil {
		isOpen = *result.OpeningHours.OpenNow
	}

	cafe := &entities.Cafe{
		ID:          result.PlaceID,
		Name:        result.Name,
		Description: fmt.Sprintf("%s in %s", strings.Join(result.Types, ", "), result.Vicinity),
		Address:     result.Vicinity,
		Location:    entities.Location{Latitude: lat, Longitude: lon},
		PriceRange:  priceRangeForLevel(result.PriceLevel),
		ReviewCount: result.UserRatingsTotal,
		CrowdLevel:  entities.CrowdLevelMedium,
		IsOpen:      isOpen,
		ImageURL:    a.photoURL(result),
		WifiSpeed:   "Good WiFi",
		Atmosphere:  []string{"Google Places"},
		Specialties: []string{"Coffee"},
		Amenities:   []string{"WiFi"},
		DistanceKm:  &distance,
	}
	if result.Rating > 0 {
		rating := result.Rating
		cafe.Rating = &rating
	}

	return cafe
}

func (a *GoogleAdapter) photoURL(result googleNearbyResult) string {
	if len(result.Photos) == 0 || result.Photos[0].PhotoReference == "" {
		return "/api/placeholder/400/300"
	}
	return fmt.Sprintf("https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=%s&key=%s",
		result.Photos[0].PhotoReference, a.apiKey)
}

func priceRangeForLevel(level *int) string {
	if level == nil || *level <= 0 {
		return entities.PriceTierMedium
	}
	return strings.Repeat("$", *level)
}

type googleNearbyResponse struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Results      []googleNearbyResult `json:"results"`
}

type googleNearbyResult struct {
	PlaceID          string              `json:"place_id"`
	Name             string              `json:"name"`
	Vicinity         string              `json:"vicinity"`
	Types            []string            `json:"types"`
	Rating           float64             `json:"rating"`
	UserRatingsTotal int                 `json:"user_ratings_total"`
	PriceLevel       *int                `json:"price_level"`
	OpeningHours     *googleOpeningHours `json:"opening_hours"`
	Photos           []googlePhoto       `json:"photos"`
	Geometry         googleGeometry      `json:"geometry"`
}

type googlePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

type googleOpeningHours struct {
	OpenNow *bool `json:"open_now"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
