package entities

import (
	"encoding/json"
	"time"
)

// Analytics event types tracked by the client.
const (
	EventCafeView        = "cafe_view"
	EventCafeSearch      = "cafe_search"
	EventFilterApplied   = "filter_applied"
	EventFavoriteAdded   = "favorite_added"
	EventFavoriteRemoved = "favorite_removed"
	EventReviewSubmitted = "review_submitted"
)

// AnalyticsEvent records a single user interaction. Writes are best-effort
// and never block a user request.
type AnalyticsEvent struct {
	ID        string          `json:"id" db:"id"`
	UserID    *string         `json:"user_id,omitempty" db:"user_id"`
	EventType string          `json:"event_type" db:"event_type"`
	CafeID    *string         `json:"cafe_id,omitempty" db:"cafe_id"`
	EventData json.RawMessage `json:"event_data,omitempty" db:"event_data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
