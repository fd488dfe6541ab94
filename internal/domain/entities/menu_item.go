package entities

import "time"

// MenuItem is a single entry on a cafe's menu.
type MenuItem struct {
	ID          string    `json:"id" db:"id"`
	CafeID      string    `json:"cafe_id" db:"cafe_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// GroupMenuByCategory buckets menu items by category, preserving input order
// within each bucket.
func GroupMenuByCategory(items []*MenuItem) map[string][]*MenuItem {
	grouped := make(map[string][]*MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
