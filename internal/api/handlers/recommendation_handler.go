package handlers

import (
	"errors"
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	recommendations *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendations *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// GetRecommendations handles GET /api/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	recommendations, err := h.recommendations.Recommend(r.Context(), user)
	if err != nil {
		if errors.Is(err, providers.ErrAIRateLimited) {
			respondWithError(w, http.StatusTooManyRequests, "recommendations are rate limited, try again shortly")
			return
		}
		if errors.Is(err, providers.ErrAICreditsExhausted) {
			respondWithError(w, http.StatusPaymentRequired, "recommendations are temporarily unavailable")
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}
