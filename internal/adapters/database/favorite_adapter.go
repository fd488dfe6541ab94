package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// FavoriteAdapter implements favorite persistence in Postgres.
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter.
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.Dialect("postgres").DB(client.DB()),
	}
}

// Add records a favorite. Adding an existing favorite is a no-op.
func (a *FavoriteAdapter) Add(ctx context.Context, favorite *entities.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, cafe_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, cafe_id) DO NOTHING`

	_, err := a.client.DB().ExecContext(ctx, query, favorite.UserID, favorite.CafeID, favorite.CreatedAt)
	if err != nil {
		return apperrors.NewInternalError("failed to add favorite", err)
	}

	return nil
}

// Remove deletes a favorite. Removing a missing favorite is a no-op.
func (a *FavoriteAdapter) Remove(ctx context.Context, userID, cafeID string) error {
	query, args, err := a.db.Delete("favorites").
		Where(goqu.C("user_id").Eq(userID), goqu.C("cafe_id").Eq(cafeID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to remove favorite", err)
	}

	return nil
}

// Exists reports whether the user has favorited the cafe.
func (a *FavoriteAdapter) Exists(ctx context.Context, userID, cafeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND cafe_id = $2)`

	var exists bool
	if err := a.client.DB().QueryRowContext(ctx, query, userID, cafeID).Scan(&exists); err != nil {
		return false, apperrors.NewInternalError("failed to check favorite", err)
	}

	return exists, nil
}

// ListCafeIDs returns the ids of the user's favorited cafes, newest first.
func (a *FavoriteAdapter) ListCafeIDs(ctx context.Context, userID string) ([]string, error) {
	query, args, err := a.db.From("favorites").
		Select("cafe_id").
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("created_at").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favorite list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan favorite", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating favorites", err)
	}

	return ids, nil
}
