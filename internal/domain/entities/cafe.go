package entities

import "time"

// Price tiers are the four symbolic budget levels a cafe can carry.
const (
	PriceTierLow     = "$"
	PriceTierMedium  = "$$"
	PriceTierHigh    = "$$$"
	PriceTierPremium = "$$$$"
)

// Crowd levels describe venue occupancy.
const (
	CrowdLevelLow    = "Low"
	CrowdLevelMedium = "Medium"
	CrowdLevelHigh   = "High"
)

// Cafe represents one venue in the system. Records sourced from the external
// places provider share this shape but their IDs are provider-specific and
// must never be merged with internal rows by id.
type Cafe struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Description        string    `json:"description" db:"description"`
	Address            string    `json:"address" db:"address"`
	Location           Location  `json:"location" db:"-"`
	PriceRange         string    `json:"price_range" db:"price_range"`
	Rating             *float64  `json:"rating,omitempty" db:"rating"`
	ReviewCount        int       `json:"review_count" db:"review_count"`
	CrowdLevel         string    `json:"crowd_level" db:"crowd_level"`
	IsOpen             bool      `json:"is_open" db:"is_open"`
	ImageURL           string    `json:"image_url,omitempty" db:"image_url"`
	Atmosphere         []string  `json:"atmosphere" db:"-"`
	Specialties        []string  `json:"specialties" db:"-"`
	Amenities          []string  `json:"amenities" db:"-"`
	WifiSpeed          string    `json:"wifi_speed,omitempty" db:"wifi_speed"`
	Phone              string    `json:"phone,omitempty" db:"phone"`
	Website            string    `json:"website,omitempty" db:"website"`
	MoodClassification string    `json:"mood_classification,omitempty" db:"mood_classification"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`

	// DistanceKm is computed per query and never persisted. It is set only
	// when both the user and cafe coordinates are known.
	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// PriceTierForBudget maps a budget key to its price tier symbol.
func PriceTierForBudget(budget string) (string, bool) {
	switch budget {
	case "low":
		return PriceTierLow, true
	case "medium":
		return PriceTierMedium, true
	case "high":
		return PriceTierHigh, true
	case "premium":
		return PriceTierPremium, true
	default:
		return "", false
	}
}
