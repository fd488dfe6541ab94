package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

func sampleCafe() *entities.Cafe {
	rating := 4.5
	return &entities.Cafe{
		ID:          "cafe-1",
		Name:        "Fog Lifter Coffee",
		Description: "Third-wave roastery with single-origin pour overs",
		Address:     "480 Hayes St, San Francisco, CA",
		PriceRange:  entities.PriceTierMedium,
		Rating:      &rating,
		Atmosphere:  []string{"calm", "study-friendly"},
	}
}

func TestCafeFilters_EmptyMatchesEverything(t *testing.T) {
	filters := services.CafeFilters{}

	assert.True(t, filters.IsEmpty())
	assert.True(t, filters.Matches(sampleCafe()))
	assert.True(t, filters.Matches(&entities.Cafe{}))
}

func TestCafeFilters_QueryMatchesAnyTextField(t *testing.T) {
	cafe := sampleCafe()

	assert.True(t, services.CafeFilters{Query: "fog lifter"}.Matches(cafe))
	assert.True(t, services.CafeFilters{Query: "ROASTERY"}.Matches(cafe))
	assert.True(t, services.CafeFilters{Query: "hayes st"}.Matches(cafe))
	assert.False(t, services.CafeFilters{Query: "tea house"}.Matches(cafe))
}

func TestCafeFilters_LocationMatchesAddressOnly(t *testing.T) {
	cafe := sampleCafe()

	assert.True(t, services.CafeFilters{Location: "san francisco"}.Matches(cafe))
	// Name text must not satisfy the location filter
	assert.False(t, services.CafeFilters{Location: "fog lifter"}.Matches(cafe))
}

func TestCafeFilters_MoodsCombineWithOr(t *testing.T) {
	cafe := sampleCafe()

	assert.True(t, services.CafeFilters{Moods: []string{"calm"}}.Matches(cafe))
	assert.True(t, services.CafeFilters{Moods: []string{"romantic", "CALM"}}.Matches(cafe))
	assert.False(t, services.CafeFilters{Moods: []string{"romantic", "lively"}}.Matches(cafe))
}

func TestCafeFilters_CategoriesCombineWithAnd(t *testing.T) {
	cafe := sampleCafe()

	both := services.CafeFilters{Query: "roastery", Budget: "medium"}
	assert.True(t, both.Matches(cafe))

	oneFails := services.CafeFilters{Query: "roastery", Budget: "premium"}
	assert.False(t, oneFails.Matches(cafe))
}

func TestCafeFilters_BudgetMapsToPriceTier(t *testing.T) {
	cafe := sampleCafe()

	assert.True(t, services.CafeFilters{Budget: "medium"}.Matches(cafe))
	assert.False(t, services.CafeFilters{Budget: "low"}.Matches(cafe))
	assert.False(t, services.CafeFilters{Budget: "bogus"}.Matches(cafe))
}

func TestCafeFilters_DistanceBound(t *testing.T) {
	maxDist := 2.0
	near := 1.2
	far := 5.8

	cafe := sampleCafe()

	cafe.DistanceKm = &near
	assert.True(t, services.CafeFilters{MaxDistanceKm: &maxDist}.Matches(cafe))

	cafe.DistanceKm = &far
	assert.False(t, services.CafeFilters{MaxDistanceKm: &maxDist}.Matches(cafe))
}

func TestCafeFilters_UnknownDistancePassesUnlessRequired(t *testing.T) {
	maxDist := 2.0
	cafe := sampleCafe()
	cafe.DistanceKm = nil

	lenient := services.CafeFilters{MaxDistanceKm: &maxDist}
	assert.True(t, lenient.Matches(cafe))

	strict := services.CafeFilters{MaxDistanceKm: &maxDist, RequireDistance: true}
	assert.False(t, strict.Matches(cafe))
}
