package handlers

import (
	"errors"
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// MoodHandler handles mood analysis HTTP requests
type MoodHandler struct {
	analyzer *services.MoodAnalysisService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(analyzer *services.MoodAnalysisService) *MoodHandler {
	return &MoodHandler{analyzer: analyzer}
}

// GetCafeMood handles GET /api/cafes/{id}/mood
func (h *MoodHandler) GetCafeMood(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("id")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), cafeID)
	if err != nil {
		// Provider-reported AI limits get specific messages and statuses.
		if errors.Is(err, providers.ErrAIRateLimited) {
			respondWithError(w, http.StatusTooManyRequests, "mood analysis is rate limited, try again shortly")
			return
		}
		if errors.Is(err, providers.ErrAICreditsExhausted) {
			respondWithError(w, http.StatusPaymentRequired, "mood analysis is temporarily unavailable")
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}
