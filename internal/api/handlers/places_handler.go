package handlers

import (
	"net/http"
	"strconv"

	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

const defaultNearbyRadiusMeters = 1500

// PlacesHandler handles external places HTTP requests
type PlacesHandler struct {
	places providers.PlacesProvider
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(places providers.PlacesProvider) *PlacesHandler {
	return &PlacesHandler{places: places}
}

// NearbyCafes handles GET /api/places/nearby
func (h *PlacesHandler) NearbyCafes(w http.ResponseWriter, r *http.Request) {
	if h.places == nil {
		respondWithError(w, http.StatusServiceUnavailable, "nearby place discovery is not configured")
		return
	}

	center, err := coordinatesFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if center == nil {
		respondWithError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	radius := defaultNearbyRadiusMeters
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "radius must be a positive integer in meters")
			return
		}
		radius = parsed
	}

	cafes, err := h.places.NearbyCafes(r.Context(), *center, radius)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// Zero results is a valid empty response.
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": cafes,
		"count":   len(cafes),
	})
}
