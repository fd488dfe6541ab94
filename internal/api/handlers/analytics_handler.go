package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// AnalyticsHandler handles analytics event HTTP requests
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

var validEventTypes = map[string]bool{
	entities.EventCafeView:        true,
	entities.EventCafeSearch:      true,
	entities.EventFilterApplied:   true,
	entities.EventFavoriteAdded:   true,
	entities.EventFavoriteRemoved: true,
	entities.EventReviewSubmitted: true,
}

type trackEventRequest struct {
	EventType string          `json:"event_type"`
	CafeID    *string         `json:"cafe_id,omitempty"`
	EventData json.RawMessage `json:"event_data,omitempty"`
}

// TrackEvent handles POST /api/analytics/events
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEventTypes[req.EventType] {
		respondWithError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	var userID *string
	if user := middleware.UserFromContext(r.Context()); user != nil {
		userID = &user.ID
	}

	// The write is best-effort and backgrounded; the client never waits on it.
	h.analytics.Track(r.Context(), userID, req.EventType, req.CafeID, req.EventData)

	respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
