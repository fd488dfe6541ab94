package handlers

import (
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// FavoriteHandler handles favorite-related HTTP requests
type FavoriteHandler struct {
	favorites *services.FavoriteService
	analytics *services.AnalyticsService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *services.FavoriteService, analytics *services.AnalyticsService) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		analytics: analytics,
	}
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	cafes, err := h.favorites.ListCafes(r.Context(), user)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": cafes,
		"count":     len(cafes),
	})
}

// ToggleFavorite handles POST /api/favorites/{cafeId}/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("cafeId")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	user := middleware.UserFromContext(r.Context())
	favorited, err := h.favorites.Toggle(r.Context(), user, cafeID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.analytics != nil {
		eventType := entities.EventFavoriteRemoved
		if favorited {
			eventType = entities.EventFavoriteAdded
		}
		h.analytics.Track(r.Context(), &user.ID, eventType, &cafeID, nil)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cafe_id":   cafeID,
		"favorited": favorited,
	})
}
