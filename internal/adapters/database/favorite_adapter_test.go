package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

func TestFavoriteAdapter_Add_IsIdempotent(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewFavoriteAdapter(client)

	// Duplicate pairs are absorbed by the conflict clause
	mock.ExpectExec(`INSERT INTO favorites .+ ON CONFLICT \(user_id, cafe_id\) DO NOTHING`).
		WithArgs("user-1", "cafe-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Add(context.Background(), &entities.Favorite{
		UserID:    "user-1",
		CafeID:    "cafe-1",
		CreatedAt: time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdapter_Exists(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewFavoriteAdapter(client)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1", "cafe-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := adapter.Exists(context.Background(), "user-1", "cafe-1")

	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoriteAdapter_ListCafeIDs(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewFavoriteAdapter(client)

	rows := sqlmock.NewRows([]string{"cafe_id"}).AddRow("b").AddRow("a")
	mock.ExpectQuery(`SELECT "cafe_id" FROM "favorites" WHERE \("user_id" = \$1\) ORDER BY "created_at" DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	ids, err := adapter.ListCafeIDs(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)
}
