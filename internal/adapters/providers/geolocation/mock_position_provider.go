package geolocation

import (
	"context"
	"sync"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// MockPositionProvider implements a configurable position sensor for testing
// and for deployments without a device sensor. It serves a fixed coordinate,
// optionally failing with a configured sensor error, and honors MaxCacheAge
// by reusing the last fix.
type MockPositionProvider struct {
	mu         sync.Mutex
	position   providers.Coordinates
	err        error
	lastFix    *providers.Coordinates
	lastFixAt  time.Time
	readDelay  time.Duration
	watchEvery time.Duration
}

// NewMockPositionProvider creates a position provider that always reports the
// given coordinate.
func NewMockPositionProvider(position providers.Coordinates) *MockPositionProvider {
	return &MockPositionProvider{
		position:   position,
		watchEvery: time.Second,
	}
}

// SetError makes subsequent reads fail with err. Pass nil to restore reads.
func (m *MockPositionProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetPosition changes the coordinate served to subsequent reads.
func (m *MockPositionProvider) SetPosition(position providers.Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
}

// SetReadDelay makes each one-shot read take at least d, so timeout paths can
// be exercised.
func (m *MockPositionProvider) SetReadDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDelay = d
}

// Current performs a one-shot position read.
func (m *MockPositionProvider) Current(ctx context.Context, opts providers.PositionOptions) (*providers.Coordinates, error) {
	m.mu.Lock()
	err := m.err
	position := m.position
	delay := m.readDelay
	if opts.MaxCacheAge > 0 && m.lastFix != nil && time.Since(m.lastFixAt) <= opts.MaxCacheAge {
		cached := *m.lastFix
		m.mu.Unlock()
		return &cached, nil
	}
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if delay > 0 {
		timeout := opts.Timeout
		if timeout > 0 && delay > timeout {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(timeout):
				return nil, providers.ErrPositionTimeout
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	m.mu.Lock()
	m.lastFix = &position
	m.lastFixAt = time.Now()
	m.mu.Unlock()

	return &position, nil
}

// Watch streams the configured position until ctx is cancelled.
func (m *MockPositionProvider) Watch(ctx context.Context, opts providers.PositionOptions) (<-chan providers.Coordinates, error) {
	m.mu.Lock()
	err := m.err
	interval := m.watchEvery
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	updates := make(chan providers.Coordinates, 1)
	go func() {
		defer close(updates)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				position := m.position
				m.mu.Unlock()
				select {
				case updates <- position:
				default:
				}
			}
		}
	}()

	return updates, nil
}
