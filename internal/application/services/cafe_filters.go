package services

import (
	"strings"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// CafeFilters is an ephemeral set of user-selected filter criteria. The zero
// value matches every cafe.
type CafeFilters struct {
	// Query matches name OR description OR address, case-insensitive substring
	Query string

	// Location matches address only, case-insensitive substring
	Location string

	// Moods passes on non-empty intersection with the cafe's atmosphere tags
	Moods []string

	// Budget is a budget key (low/medium/high/premium) mapped to a tier symbol
	Budget string

	// MaxDistanceKm bounds the computed distance. A cafe with unknown distance
	// passes unless RequireDistance is set.
	MaxDistanceKm   *float64
	RequireDistance bool
}

// IsEmpty reports whether no criteria are set.
func (f CafeFilters) IsEmpty() bool {
	return f.Query == "" && f.Location == "" && len(f.Moods) == 0 &&
		f.Budget == "" && f.MaxDistanceKm == nil
}

// Matches evaluates the filter set against one cafe. Categories combine with
// AND; mood tags combine with OR.
func (f CafeFilters) Matches(cafe *entities.Cafe) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(cafe.Name), q) &&
			!strings.Contains(strings.ToLower(cafe.Description), q) &&
			!strings.Contains(strings.ToLower(cafe.Address), q) {
			return false
		}
	}

	if f.Location != "" {
		if !strings.Contains(strings.ToLower(cafe.Address), strings.ToLower(f.Location)) {
			return false
		}
	}

	if len(f.Moods) > 0 && !overlaps(f.Moods, cafe.Atmosphere) {
		return false
	}

	if f.Budget != "" {
		tier, ok := entities.PriceTierForBudget(f.Budget)
		if !ok || cafe.PriceRange != tier {
			return false
		}
	}

	if f.MaxDistanceKm != nil {
		if cafe.DistanceKm == nil {
			// Unknown distance passes unless the caller demands a known one.
			return !f.RequireDistance
		}
		if *cafe.DistanceKm > *f.MaxDistanceKm {
			return false
		}
	}

	return true
}

func overlaps(selected, tags []string) bool {
	for _, want := range selected {
		for _, tag := range tags {
			if strings.EqualFold(want, tag) {
				return true
			}
		}
	}
	return false
}
