package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
)

// CachedCafeAdapter wraps CafeAdapter with caching
type CachedCafeAdapter struct {
	adapter repositories.CafeRepository
	cache   providers.CacheProvider
}

// NewCachedCafeAdapter creates a new cached cafe adapter
func NewCachedCafeAdapter(adapter repositories.CafeRepository, cache providers.CacheProvider) repositories.CafeRepository {
	return &CachedCafeAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	cafeByIDTTL   = 300 // 5 minutes for single cafe
	cafesListTTL  = 180 // 3 minutes for lists
	searchListTTL = 120 // 2 minutes for filtered result sets
)

// Cache key generators
func cafeCacheKey(id string) string {
	return fmt.Sprintf("cafe:%s", id)
}

func cafesListCacheKey(filter repositories.CafeFilter) string {
	isOpen := "any"
	if filter.IsOpen != nil {
		isOpen = fmt.Sprintf("%t", *filter.IsOpen)
	}
	return fmt.Sprintf("cafes:list:%s:%s:%s:%s:%s:%d:%d",
		filter.Query, filter.Location, strings.Join(filter.Moods, ","),
		filter.PriceTier, isOpen, filter.Limit, filter.Offset)
}

// GetByID retrieves a cafe by ID with caching
func (a *CachedCafeAdapter) GetByID(ctx context.Context, id string) (*entities.Cafe, error) {
	cacheKey := cafeCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var cafe entities.Cafe
		if err := json.Unmarshal(cached, &cafe); err == nil {
			return &cafe, nil
		}
		// If unmarshal fails, continue to fetch from DB
		log.Printf("Failed to unmarshal cached cafe %s: %v", id, err)
	}

	// Cache miss - fetch from database
	cafe, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(cafe); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, cafeByIDTTL); err != nil {
				log.Printf("Failed to cache cafe %s: %v", id, err)
			}
		}
	}()

	return cafe, nil
}

// GetByIDs retrieves multiple cafes by IDs with batch caching
func (a *CachedCafeAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Cafe, error) {
	if len(ids) == 0 {
		return []*entities.Cafe{}, nil
	}

	// Try to get all from cache first using batch operation
	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = cafeCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var cachedCafes []*entities.Cafe
	missingIDs := make([]string, 0)

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var cafe entities.Cafe
			if err := json.Unmarshal(data, &cafe); err == nil {
				cachedCafes = append(cachedCafes, &cafe)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	// If all were cached, return them
	if len(missingIDs) == 0 {
		return cachedCafes, nil
	}

	// Fetch missing cafes from database
	dbCafes, err := a.adapter.GetByIDs(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	// Cache the missing cafes asynchronously using batch operation
	go func() {
		bgCtx := context.Background()
		items := make(map[string][]byte)
		for _, cafe := range dbCafes {
			if data, err := json.Marshal(cafe); err == nil {
				items[cafeCacheKey(cafe.ID)] = data
			}
		}
		if len(items) > 0 {
			if err := a.cache.SetMulti(bgCtx, items, cafeByIDTTL); err != nil {
				log.Printf("Failed to batch cache cafes: %v", err)
			}
		}
	}()

	return append(cachedCafes, dbCafes...), nil
}

// List retrieves filtered cafes with caching
func (a *CachedCafeAdapter) List(ctx context.Context, filter repositories.CafeFilter) ([]*entities.Cafe, error) {
	cacheKey := cafesListCacheKey(filter)

	ttl := cafesListTTL
	if filter.Query != "" || filter.Location != "" || len(filter.Moods) > 0 {
		ttl = searchListTTL
	}

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var cafes []*entities.Cafe
		if err := json.Unmarshal(cached, &cafes); err == nil {
			return cafes, nil
		}
		log.Printf("Failed to unmarshal cached cafe list: %v", err)
	}

	// Cache miss - fetch from database
	cafes, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(cafes); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, ttl); err != nil {
				log.Printf("Failed to cache cafe list: %v", err)
			}
		}
	}()

	return cafes, nil
}

// Create creates a cafe and invalidates list caches
func (a *CachedCafeAdapter) Create(ctx context.Context, cafe *entities.Cafe) error {
	if err := a.adapter.Create(ctx, cafe); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "cafes:list:*"); err != nil {
			log.Printf("Failed to invalidate cafe list cache: %v", err)
		}
	}()

	return nil
}

// Update updates a cafe and invalidates its caches
func (a *CachedCafeAdapter) Update(ctx context.Context, cafe *entities.Cafe) error {
	if err := a.adapter.Update(ctx, cafe); err != nil {
		return err
	}

	a.invalidateCafe(cafe.ID)
	return nil
}

// UpdateRating replaces rating statistics and invalidates caches so readers
// see the new aggregate promptly
func (a *CachedCafeAdapter) UpdateRating(ctx context.Context, id string, rating *float64, reviewCount int) error {
	if err := a.adapter.UpdateRating(ctx, id, rating, reviewCount); err != nil {
		return err
	}

	a.invalidateCafe(id)
	return nil
}

// UpdateMoodClassification sets the dominant mood label and invalidates caches
func (a *CachedCafeAdapter) UpdateMoodClassification(ctx context.Context, id string, mood string) error {
	if err := a.adapter.UpdateMoodClassification(ctx, id, mood); err != nil {
		return err
	}

	a.invalidateCafe(id)
	return nil
}

func (a *CachedCafeAdapter) invalidateCafe(id string) {
	go func() {
		bgCtx := context.Background()

		if err := a.cache.Delete(bgCtx, cafeCacheKey(id)); err != nil {
			log.Printf("Failed to invalidate cafe cache %s: %v", id, err)
		}
		if err := a.cache.DeletePattern(bgCtx, "cafes:list:*"); err != nil {
			log.Printf("Failed to invalidate cafe list cache: %v", err)
		}
	}()
}
