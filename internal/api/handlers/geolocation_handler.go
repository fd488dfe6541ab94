package handlers

import (
	"errors"
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// GeolocationHandler handles geocoding and location preset HTTP requests
type GeolocationHandler struct {
	geocoder  providers.GeolocationProvider
	locations *services.LocationService
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(geocoder providers.GeolocationProvider, locations *services.LocationService) *GeolocationHandler {
	return &GeolocationHandler{
		geocoder:  geocoder,
		locations: locations,
	}
}

// Geocode handles GET /api/geocode
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address is required")
		return
	}

	location, err := h.geocoder.Geocode(r.Context(), address)
	if err != nil {
		// A lookup that succeeds but matches nothing is a not-found, not a
		// gateway failure.
		if errors.Is(err, providers.ErrNoResults) {
			respondWithError(w, http.StatusNotFound, "no places matched that search")
			return
		}
		respondWithError(w, http.StatusBadGateway, "location lookup failed")
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}

// ListPresets handles GET /api/locations/presets
func (h *GeolocationHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"presets": h.locations.Presets(),
	})
}
