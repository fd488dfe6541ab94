package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/adapters/providers/geolocation"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// Location acquisition states.
const (
	LocationUnresolved = "unresolved"
	LocationResolving  = "resolving"
	LocationResolved   = "resolved"
	LocationFailed     = "failed"
)

// Sensor read bounds: a high-accuracy attempt first, then a relaxed fallback
// that tolerates a longer wait and a staler cached fix.
var (
	highAccuracyOptions = providers.PositionOptions{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaxCacheAge:  time.Minute,
	}
	fallbackOptions = providers.PositionOptions{
		HighAccuracy: false,
		Timeout:      20 * time.Second,
		MaxCacheAge:  5 * time.Minute,
	}
)

// LocationState is the current outcome of location acquisition.
type LocationState struct {
	Status      string                 `json:"status"`
	Coordinates *providers.Coordinates `json:"coordinates,omitempty"`
	Source      string                 `json:"source,omitempty"`
	// Message is the user-facing failure description.
	Message string `json:"message,omitempty"`
}

// LocationService acquires the user position via the device sensor, free-text
// geocoding, or a named preset. Resolutions carry generation tokens: a
// completion belonging to a superseded attempt never overwrites newer state.
type LocationService struct {
	position providers.PositionProvider
	geocoder providers.GeolocationProvider

	mu          sync.Mutex
	generation  uint64
	state       LocationState
	trackCancel context.CancelFunc
}

// NewLocationService creates a new location service. position may be nil on
// deployments without a sensor; sensor acquisition then fails as unsupported.
func NewLocationService(position providers.PositionProvider, geocoder providers.GeolocationProvider) *LocationService {
	return &LocationService{
		position: position,
		geocoder: geocoder,
		state:    LocationState{Status: LocationUnresolved},
	}
}

// State returns the current acquisition state.
func (s *LocationService) State() LocationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AcquireFromSensor resolves via the device sensor. A failed high-accuracy
// read falls back to the relaxed options before reporting failure.
func (s *LocationService) AcquireFromSensor(ctx context.Context) LocationState {
	gen := s.beginResolving()

	if s.position == nil {
		return s.fail(gen, providers.ErrSensorUnsupported)
	}

	coords, err := s.position.Current(ctx, highAccuracyOptions)
	if err != nil {
		// Permission denial is final; retrying with relaxed options would
		// just re-prompt.
		if errors.Is(err, providers.ErrPermissionDenied) || errors.Is(err, providers.ErrSensorUnsupported) {
			return s.fail(gen, err)
		}
		coords, err = s.position.Current(ctx, fallbackOptions)
	}
	if err != nil {
		return s.fail(gen, err)
	}

	return s.resolve(gen, coords, "sensor")
}

// AcquireFromAddress resolves via free-text geocoding. Only the first lookup
// result is used; a zero-result lookup fails distinctly from transport errors.
func (s *LocationService) AcquireFromAddress(ctx context.Context, address string) LocationState {
	gen := s.beginResolving()

	location, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return s.fail(gen, err)
	}

	return s.resolve(gen, &location.Coordinates, "geocode")
}

// AcquireFromPreset resolves immediately from a named preset city.
func (s *LocationService) AcquireFromPreset(name string) LocationState {
	gen := s.beginResolving()

	for _, preset := range geolocation.PresetLocations() {
		if preset.Name == name {
			coords := preset.Coordinates
			return s.resolve(gen, &coords, "preset")
		}
	}

	return s.fail(gen, providers.ErrNoResults)
}

// Presets returns the curated fallback cities.
func (s *LocationService) Presets() []geolocation.PresetLocation {
	return geolocation.PresetLocations()
}

// Track switches to continuous tracking from a resolved state. The returned
// channel delivers position updates until StopTracking or ctx cancellation,
// either of which releases the sensor subscription.
func (s *LocationService) Track(ctx context.Context) (<-chan providers.Coordinates, error) {
	s.mu.Lock()
	if s.state.Status != LocationResolved {
		s.mu.Unlock()
		return nil, errors.New("tracking requires a resolved location")
	}
	if s.position == nil {
		s.mu.Unlock()
		return nil, providers.ErrSensorUnsupported
	}
	if s.trackCancel != nil {
		s.trackCancel()
	}
	trackCtx, cancel := context.WithCancel(ctx)
	s.trackCancel = cancel
	s.mu.Unlock()

	updates, err := s.position.Watch(trackCtx, fallbackOptions)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan providers.Coordinates)
	go func() {
		defer close(out)
		for coords := range updates {
			s.mu.Lock()
			c := coords
			s.state.Coordinates = &c
			s.mu.Unlock()
			select {
			case out <- coords:
			case <-trackCtx.Done():
				return
			}
		}
	}()

	return out, nil
}

// StopTracking releases the sensor subscription, keeping the last fix.
func (s *LocationService) StopTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackCancel != nil {
		s.trackCancel()
		s.trackCancel = nil
	}
}

func (s *LocationService) beginResolving() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = LocationState{Status: LocationResolving, Coordinates: s.state.Coordinates}
	return s.generation
}

func (s *LocationService) resolve(gen uint64, coords *providers.Coordinates, source string) LocationState {
	state := LocationState{Status: LocationResolved, Coordinates: coords, Source: source}
	s.commit(gen, state)
	return state
}

func (s *LocationService) fail(gen uint64, err error) LocationState {
	state := LocationState{Status: LocationFailed, Message: failureMessage(err)}
	s.commit(gen, state)
	return state
}

// commit installs the state only if no newer acquisition has started.
func (s *LocationService) commit(gen uint64, state LocationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.state = state
}

// failureMessage maps each failure mode to its user-facing description.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, providers.ErrSensorUnsupported):
		return "Location is not supported on this device"
	case errors.Is(err, providers.ErrPermissionDenied):
		return "Location permission was denied. Enable it in settings or search by address."
	case errors.Is(err, providers.ErrPositionUnavailable):
		return "Your position could not be determined. Try searching by address."
	case errors.Is(err, providers.ErrPositionTimeout):
		return "Locating you took too long. Try again or search by address."
	case errors.Is(err, providers.ErrNoResults):
		return "No places matched that search"
	default:
		return "Location lookup failed. Check your connection and try again."
	}
}
