package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// CacheInvalidationService handles cache invalidation based on events.
// It keeps replicas consistent: a cafe updated on one instance is evicted
// from the caches of every instance subscribed to the update channel.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCafeUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to cafe updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Println("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CafeEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent evicts the single-cafe entry for the updated cafe. List caches
// carry short TTLs and refresh on their own; deleting them on every rating or
// mood update would stampede the database.
func (s *CacheInvalidationService) handleEvent(event *entities.CafeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := fmt.Sprintf("cafe:%s", event.CafeID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("Warning: Failed to invalidate cache for cafe %s: %v", event.CafeID, err)
	}
}

// InvalidateListCaches clears all cached cafe listings. This should only be
// called during maintenance or bulk data updates.
func (s *CacheInvalidationService) InvalidateListCaches(ctx context.Context) error {
	patterns := []string{
		"cafes:list:*",
		"http:cache:*",
	}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		log.Printf("Invalidated cache pattern: %s", pattern)
	}

	return nil
}
