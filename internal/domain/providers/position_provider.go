package providers

import (
	"context"
	"errors"
	"time"
)

// Sensor failure taxonomy. Each maps to a distinct user-facing message in the
// location service.
var (
	ErrSensorUnsupported  = errors.New("position sensor unsupported on this platform")
	ErrPermissionDenied   = errors.New("position permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrPositionTimeout    = errors.New("position request timed out")
)

// PositionOptions bound a single sensor read.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaxCacheAge is how stale a previously acquired fix may be and still be
	// returned instead of a fresh read.
	MaxCacheAge time.Duration
}

// PositionProvider abstracts the device position sensor. One-shot reads are
// bounded by PositionOptions.Timeout; continuous watches run until the
// watch context is cancelled, which must release the underlying subscription.
type PositionProvider interface {
	// Current performs a one-shot position read
	Current(ctx context.Context, opts PositionOptions) (*Coordinates, error)

	// Watch streams position updates until ctx is cancelled. The returned
	// channel is closed when the subscription is released.
	Watch(ctx context.Context, opts PositionOptions) (<-chan Coordinates, error)
}
