package entities

import "time"

// Favorite marks a cafe as saved by a user. Existence is the only state.
type Favorite struct {
	UserID    string    `json:"user_id" db:"user_id"`
	CafeID    string    `json:"cafe_id" db:"cafe_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
