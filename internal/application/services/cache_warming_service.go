package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
)

// CacheWarmingService pre-populates the cache with frequently accessed data
type CacheWarmingService struct {
	cafeRepo repositories.CafeRepository
	cache    providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	cafeRepo repositories.CafeRepository,
	cache providers.CacheProvider,
) *CacheWarmingService {
	return &CacheWarmingService{
		cafeRepo: cafeRepo,
		cache:    cache,
	}
}

// WarmCache warms the cache with the top-rated cafes. The list endpoint
// orders by descending rating, so these are the entries a fresh client
// fetches first.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	cafes, err := s.cafeRepo.List(ctx, repositories.CafeFilter{
		Limit:  50,
		Offset: 0,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch top cafes: %w", err)
	}

	items := make(map[string][]byte)
	for _, cafe := range cafes {
		data, err := json.Marshal(cafe)
		if err != nil {
			log.Printf("Failed to marshal cafe %s: %v", cafe.ID, err)
			continue
		}
		items[fmt.Sprintf("cafe:%s", cafe.ID)] = data
	}

	if len(items) > 0 {
		// Same TTL as the read-through path so warmed and demand-loaded
		// entries expire alike
		if err := s.cache.SetMulti(ctx, items, 300); err != nil {
			return fmt.Errorf("failed to cache top cafes: %w", err)
		}
		log.Printf("Warmed cache with %d top cafes", len(items))
	}

	return nil
}

// StartPeriodicWarming starts a background goroutine that periodically warms the cache
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	// Initial warming
	if err := s.WarmCache(ctx); err != nil {
		log.Printf("Initial cache warming failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					log.Printf("Periodic cache warming failed: %v", err)
				}
			}
		}
	}()
	log.Printf("Started periodic cache warming every %v", interval)
}

// WarmCafe warms the cache for a single cafe
func (s *CacheWarmingService) WarmCafe(ctx context.Context, cafeID string) error {
	cafe, err := s.cafeRepo.GetByID(ctx, cafeID)
	if err != nil {
		return fmt.Errorf("failed to fetch cafe: %w", err)
	}

	data, err := json.Marshal(cafe)
	if err != nil {
		return fmt.Errorf("failed to marshal cafe: %w", err)
	}

	if err := s.cache.Set(ctx, fmt.Sprintf("cafe:%s", cafeID), data, 300); err != nil {
		return fmt.Errorf("failed to cache cafe: %w", err)
	}

	log.Printf("Warmed cache for cafe %s", cafeID)
	return nil
}
