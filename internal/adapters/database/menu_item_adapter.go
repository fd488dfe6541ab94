package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// MenuItemAdapter implements menu item persistence in Postgres.
type MenuItemAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMenuItemAdapter creates a new menu item adapter.
func NewMenuItemAdapter(client *postgres.Client) repositories.MenuItemRepository {
	return &MenuItemAdapter{
		client: client,
		db:     goqu.Dialect("postgres").DB(client.DB()),
	}
}

// ListAvailableByCafe retrieves a cafe's available menu items ordered by
// category then name.
func (a *MenuItemAdapter) ListAvailableByCafe(ctx context.Context, cafeID string) ([]*entities.MenuItem, error) {
	query, args, err := a.db.From("menu_items").
		Select("id", "cafe_id", "name", "description", "price", "category", "is_available", "created_at").
		Where(goqu.C("cafe_id").Eq(cafeID), goqu.C("is_available").IsTrue()).
		Order(goqu.C("category").Asc(), goqu.C("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build menu item query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list menu items", err)
	}
	defer rows.Close()

	items := []*entities.MenuItem{}
	for rows.Next() {
		item := &entities.MenuItem{}
		var description sql.NullString
		err := rows.Scan(
			&item.ID,
			&item.CafeID,
			&item.Name,
			&description,
			&item.Price,
			&item.Category,
			&item.IsAvailable,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan menu item", err)
		}
		item.Description = description.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating menu items", err)
	}

	return items, nil
}
