package entities

import "time"

// UserPreferences holds a user's stored discovery preferences, consumed by
// the recommendation pipeline.
type UserPreferences struct {
	UserID         string    `json:"user_id" db:"user_id"`
	PreferredMoods []string  `json:"preferred_moods" db:"-"`
	Budget         string    `json:"budget,omitempty" db:"budget"`
	MaxDistanceKm  *float64  `json:"max_distance_km,omitempty" db:"max_distance_km"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
