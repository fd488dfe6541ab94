package providers

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to cafe events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.CafeEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.CafeEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel names.
const (
	// EventChannelCafeUpdates is the channel for all cafe updates
	EventChannelCafeUpdates = "cafe:updates"

	// EventChannelCafePrefix is the prefix for cafe-specific channels
	EventChannelCafePrefix = "cafe:"
)

// GetCafeChannel returns the channel name for a specific cafe
func GetCafeChannel(cafeID string) string {
	return EventChannelCafePrefix + cafeID
}
