package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/moodbrew/cafe-discovery/internal/api/middleware"
	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviews   *services.ReviewService
	analytics *services.AnalyticsService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService, analytics *services.AnalyticsService) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		analytics: analytics,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateReview handles POST /api/cafes/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("id")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.UserFromContext(r.Context())
	review, err := h.reviews.Create(r.Context(), user, cafeID, req.Rating, req.Title, req.Content)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.analytics != nil {
		h.analytics.Track(r.Context(), &user.ID, entities.EventReviewSubmitted, &cafeID, nil)
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/cafes/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	cafeID := r.PathValue("id")
	if cafeID == "" {
		respondWithError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	reviews, err := h.reviews.ListByCafe(r.Context(), cafeID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
