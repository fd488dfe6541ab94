package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

const (
	nominatimSearchURL     = "https://nominatim.openstreetmap.org/search"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// NominatimProvider implements GeolocationProvider using the OpenStreetMap
// Nominatim search API.
type NominatimProvider struct {
	userAgent  string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewNominatimProvider creates a new Nominatim geolocation provider.
func NewNominatimProvider(userAgent string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewNominatimProviderWithOptions(userAgent, cache, nominatimSearchURL, nil)
}

// NewNominatimProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimProviderWithOptions(userAgent string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimSearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		userAgent:  userAgent,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode converts a free-text address to its best-ranked location. Only the
// first result is used; an empty result set returns ErrNoResults.
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedLocation, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var location providers.GeocodedLocation
			if err := json.Unmarshal(cached, &location); err == nil && (location.Coordinates.Latitude != 0 || location.Coordinates.Longitude != 0) {
				return &location, nil
			}
		}
	}

	results, err := p.doSearchRequest(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, providers.ErrNoResults
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	location := providers.GeocodedLocation{
		DisplayName: result.DisplayName,
		Coordinates: providers.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}

	if p.cache != nil {
		if payload, err := json.Marshal(location); err == nil {
			_ = p.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}

	return &location, nil
}

func (p *NominatimProvider) doSearchRequest(ctx context.Context, query string) ([]nominatimResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return results, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
