package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

const defaultListLimit = 30

// CafeHandler handles cafe-related HTTP requests
type CafeHandler struct {
	queries  *services.CafeQueryService
	menuRepo repositories.MenuItemRepository
}

// NewCafeHandler creates a new cafe handler
func NewCafeHandler(queries *services.CafeQueryService, menuRepo repositories.MenuItemRepository) *CafeHandler {
	return &CafeHandler{
		queries:  queries,
		menuRepo: menuRepo,
	}
}

// ListCafes handles GET /api/cafes
func (h *CafeHandler) ListCafes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := services.CafeFilters{
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Budget:   q.Get("budget"),
	}
	if moods := q.Get("moods"); moods != "" {
		filters.Moods = strings.Split(moods, ",")
	}
	if raw := q.Get("max_distance"); raw != "" {
		maxDistance, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance <= 0 {
			respondWithError(w, http.StatusBadRequest, "max_distance must be a positive number")
			return
		}
		filters.MaxDistanceKm = &maxDistance
	}

	userLocation, err := coordinatesFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := intQueryParam(r, "limit", defaultListLimit)
	offset := intQueryParam(r, "offset", 0)

	result, err := h.queries.Query(r.Context(), filters, userLocation, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cafes": result.Cafes,
		"count": len(result.Cafes),
	})
}

// GetCafe handles GET /api/cafes/{id}
func (h *CafeHandler) GetCafe(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("id")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	userLocation, err := coordinatesFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cafe, err := h.queries.GetByID(r.Context(), cafeID, userLocation)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cafe)
}

// GetCafeMenu handles GET /api/cafes/{id}/menu
func (h *CafeHandler) GetCafeMenu(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("id")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	items, err := h.menuRepo.ListAvailableByCafe(r.Context(), cafeID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"menu":  entities.GroupMenuByCategory(items),
		"count": len(items),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an AppError chain to its HTTP status; anything
// else is an opaque 500.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		message := appErr.Message
		if appErr.Type == apperrors.ErrorTypeInternal {
			message = "internal server error"
		}
		respondWithError(w, appErr.HTTPStatus(), message)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// coordinatesFromQuery parses optional lat/lon query parameters. Both must be
// present together.
func coordinatesFromQuery(r *http.Request) (*providers.Coordinates, error) {
	latRaw := r.URL.Query().Get("lat")
	lonRaw := r.URL.Query().Get("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, errInvalidCoordinates
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errInvalidCoordinates
	}

	return &providers.Coordinates{Latitude: lat, Longitude: lon}, nil
}

var errInvalidCoordinates = &coordinateError{}

type coordinateError struct{}

func (e *coordinateError) Error() string {
	return "lat and lon must both be valid coordinates"
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
