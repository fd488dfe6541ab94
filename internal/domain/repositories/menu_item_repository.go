package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// MenuItemRepository defines the interface for menu reads.
type MenuItemRepository interface {
	// ListAvailableByCafe retrieves a cafe's available menu items ordered by
	// category then name
	ListAvailableByCafe(ctx context.Context, cafeID string) ([]*entities.MenuItem, error)
}
