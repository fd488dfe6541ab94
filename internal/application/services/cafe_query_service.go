package services

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/pkg/geo"
)

// CafeQueryService composes filtered cafe queries: pushdown conditions go to
// the store, distance annotation and the residual predicate run in memory.
// Every issued query carries a generation token; completions for superseded
// generations are discarded so reissued searches never overwrite newer results.
type CafeQueryService struct {
	repo       repositories.CafeRepository
	searchRepo repositories.CafeSearchRepository

	mu         sync.Mutex
	generation uint64
	lastGood   []*entities.Cafe
}

// NewCafeQueryService creates a new cafe query service. searchRepo may be nil;
// geo-search then falls back to the database.
func NewCafeQueryService(repo repositories.CafeRepository, searchRepo repositories.CafeSearchRepository) *CafeQueryService {
	return &CafeQueryService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// QueryResult is one completed cafe query.
type QueryResult struct {
	Cafes []*entities.Cafe
	// Stale is set when a newer query was issued before this one completed;
	// stale results must not replace current ones.
	Stale bool
}

// Query runs a filtered cafe search. userLocation may be nil, in which case
// distances stay unknown and ordering falls back to rating. On store failure
// the previous good result set is preserved and returned alongside the error.
func (s *CafeQueryService) Query(ctx context.Context, filters CafeFilters, userLocation *providers.Coordinates, limit, offset int) (*QueryResult, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	storeFilter := repositories.CafeFilter{
		Query:    filters.Query,
		Location: filters.Location,
		Moods:    filters.Moods,
		Limit:    limit,
		Offset:   offset,
	}
	if filters.Budget != "" {
		if tier, ok := entities.PriceTierForBudget(filters.Budget); ok {
			storeFilter.PriceTier = tier
		}
	}

	cafes, err := s.repo.List(ctx, storeFilter)
	if err != nil {
		s.mu.Lock()
		previous := s.lastGood
		s.mu.Unlock()
		return &QueryResult{Cafes: previous}, err
	}

	cafes = s.annotateAndRank(cafes, filters, userLocation)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer query was issued while this one ran.
		return &QueryResult{Cafes: cafes, Stale: true}, nil
	}
	s.lastGood = cafes
	return &QueryResult{Cafes: cafes}, nil
}

// Nearby finds cafes around a coordinate via the search index when available.
func (s *CafeQueryService) Nearby(ctx context.Context, center providers.Coordinates, radiusKm float64, limit int) ([]*entities.Cafe, error) {
	if s.searchRepo != nil {
		params := repositories.CafeSearchParams{
			Latitude:  center.Latitude,
			Longitude: center.Longitude,
			RadiusKm:  radiusKm,
			Limit:     limit,
		}
		cafes, err := s.searchRepo.Search(ctx, params)
		if err == nil {
			return s.annotateAndRank(cafes, CafeFilters{MaxDistanceKm: &radiusKm}, &center), nil
		}
		log.Printf("Warning: search index unavailable, falling back to database: %v", err)
	}

	cafes, err := s.repo.List(ctx, repositories.CafeFilter{Limit: limit * 4})
	if err != nil {
		return nil, err
	}
	return s.annotateAndRank(cafes, CafeFilters{MaxDistanceKm: &radiusKm, RequireDistance: true}, &center), nil
}

// GetByID retrieves one cafe, annotated with distance when a user coordinate
// is supplied.
func (s *CafeQueryService) GetByID(ctx context.Context, id string, userLocation *providers.Coordinates) (*entities.Cafe, error) {
	cafe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	annotateDistance(cafe, userLocation)
	return cafe, nil
}

// GetByIDs retrieves multiple cafes by id.
func (s *CafeQueryService) GetByIDs(ctx context.Context, ids []string) ([]*entities.Cafe, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// annotateAndRank sets distances, applies the residual in-memory predicate,
// and orders the result: ascending distance when the user location is known
// (rating breaks ties), otherwise descending rating.
func (s *CafeQueryService) annotateAndRank(cafes []*entities.Cafe, filters CafeFilters, userLocation *providers.Coordinates) []*entities.Cafe {
	filtered := make([]*entities.Cafe, 0, len(cafes))
	for _, cafe := range cafes {
		annotateDistance(cafe, userLocation)
		if filters.Matches(cafe) {
			filtered = append(filtered, cafe)
		}
	}

	if userLocation != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			di, dj := filtered[i].DistanceKm, filtered[j].DistanceKm
			switch {
			case di != nil && dj != nil && *di != *dj:
				return *di < *dj
			case di != nil && dj == nil:
				return true
			case di == nil && dj != nil:
				return false
			}
			return ratingOf(filtered[i]) > ratingOf(filtered[j])
		})
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return ratingOf(filtered[i]) > ratingOf(filtered[j])
		})
	}

	return filtered
}

func annotateDistance(cafe *entities.Cafe, userLocation *providers.Coordinates) {
	if userLocation == nil {
		return
	}
	if cafe.Location.Latitude == 0 && cafe.Location.Longitude == 0 {
		return
	}
	d := geo.Distance(userLocation.Latitude, userLocation.Longitude,
		cafe.Location.Latitude, cafe.Location.Longitude)
	cafe.DistanceKm = &d
}

func ratingOf(cafe *entities.Cafe) float64 {
	if cafe.Rating == nil {
		return 0
	}
	return *cafe.Rating
}
