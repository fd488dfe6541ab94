package entities

import (
	"encoding/json"
	"time"
)

// Cafe event types published on the event bus.
const (
	CafeEventRatingUpdated = "rating_updated"
	CafeEventMoodUpdated   = "mood_updated"
)

// CafeEvent is published whenever derived cafe state changes (new review,
// fresh mood analysis).
type CafeEvent struct {
	ID        string          `json:"id"`
	CafeID    string          `json:"cafe_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
