package entities

import "time"

// Review is a user review for a cafe. Reviews are append-only; the system
// never updates or deletes them.
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CafeID    string    `json:"cafe_id" db:"cafe_id"`
	Rating    int       `json:"rating" db:"rating"`
	Title     string    `json:"title,omitempty" db:"title"`
	Content   string    `json:"content,omitempty" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
