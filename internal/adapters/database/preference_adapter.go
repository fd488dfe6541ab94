package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// PreferenceAdapter implements user preference persistence in Postgres.
type PreferenceAdapter struct {
	client *postgres.Client
}

// NewPreferenceAdapter creates a new preference adapter.
func NewPreferenceAdapter(client *postgres.Client) repositories.PreferenceRepository {
	return &PreferenceAdapter{client: client}
}

// GetByUser retrieves the user's stored preferences.
func (a *PreferenceAdapter) GetByUser(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	query := `
		SELECT user_id, preferred_moods, budget, max_distance_km, updated_at
		FROM user_preferences
		WHERE user_id = $1`

	pref := &entities.UserPreferences{}
	var budget sql.NullString
	var maxDistance sql.NullFloat64
	err := a.client.DB().QueryRowContext(ctx, query, userID).Scan(
		&pref.UserID,
		pq.Array(&pref.PreferredMoods),
		&budget,
		&maxDistance,
		&pref.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("preferences not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get preferences", err)
	}
	pref.Budget = budget.String
	if maxDistance.Valid {
		pref.MaxDistanceKm = &maxDistance.Float64
	}

	return pref, nil
}
