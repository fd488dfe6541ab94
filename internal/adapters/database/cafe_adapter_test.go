package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func cafeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "address", "latitude", "longitude",
		"price_range", "rating", "review_count", "crowd_level", "is_open",
		"image_url", "wifi_speed", "phone", "website", "mood_classification",
		"atmosphere", "specialties", "amenities", "created_at", "updated_at",
	})
}

func TestCafeAdapter_GetByID(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	now := time.Now()
	rows := cafeRows().AddRow(
		"cafe-1", "Fog Lifter Coffee", "Roastery", "480 Hayes St", 37.7765, -122.4241,
		"$$", 4.6, 312, "Medium", true,
		"", "Fast WiFi", "", "", "calm",
		"{calm,study-friendly}", "{\"Pour Over\"}", "{WiFi,Outlets}", now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM "cafes" WHERE \("id" = \$1\)`).
		WithArgs("cafe-1").
		WillReturnRows(rows)

	cafe, err := adapter.GetByID(context.Background(), "cafe-1")

	require.NoError(t, err)
	assert.Equal(t, "Fog Lifter Coffee", cafe.Name)
	assert.Equal(t, 37.7765, cafe.Location.Latitude)
	assert.Equal(t, []string{"calm", "study-friendly"}, cafe.Atmosphere)
	if assert.NotNil(t, cafe.Rating) {
		assert.Equal(t, 4.6, *cafe.Rating)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCafeAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "cafes"`).
		WithArgs("missing").
		WillReturnRows(cafeRows())

	_, err := adapter.GetByID(context.Background(), "missing")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCafeAdapter_GetByIDs_EmptyInput(t *testing.T) {
	client, _ := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	cafes, err := adapter.GetByIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, cafes)
}

func TestCafeAdapter_List_PushesFiltersDown(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "cafes" WHERE .*ILIKE.*atmosphere && .*ORDER BY "rating" DESC NULLS LAST LIMIT`).
		WillReturnRows(cafeRows())

	_, err := adapter.List(context.Background(), repositories.CafeFilter{
		Query:     "espresso",
		Moods:     []string{"lively"},
		PriceTier: "$",
		Limit:     10,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCafeAdapter_UpdateRating(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	rating := 4.2
	mock.ExpectExec(`UPDATE cafes SET rating = \$2, review_count = \$3, updated_at = \$4 WHERE id = \$1`).
		WithArgs("cafe-1", sqlmock.AnyArg(), 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateRating(context.Background(), "cafe-1", &rating, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCafeAdapter_UpdateRating_UnknownCafe(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCafeAdapter(client)

	mock.ExpectExec(`UPDATE cafes SET rating`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.UpdateRating(context.Background(), "missing", nil, 0)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
