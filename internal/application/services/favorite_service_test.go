package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moodbrew/cafe-discovery/internal/application/services"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

func TestFavoriteService_Toggle_RejectsAnonymous(t *testing.T) {
	favorites := new(mockFavoriteRepository)
	cafes := new(mockCafeRepository)
	service := services.NewFavoriteService(favorites, cafes)

	_, err := service.Toggle(context.Background(), nil, "cafe-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	favorites.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteService_Toggle_AddsWhenAbsent(t *testing.T) {
	favorites := new(mockFavoriteRepository)
	cafes := new(mockCafeRepository)
	service := services.NewFavoriteService(favorites, cafes)

	favorites.On("Exists", mock.Anything, "user-1", "cafe-1").Return(false, nil)
	favorites.On("Add", mock.Anything, mock.MatchedBy(func(f *entities.Favorite) bool {
		return f.UserID == "user-1" && f.CafeID == "cafe-1"
	})).Return(nil)

	favorited, err := service.Toggle(context.Background(), &entities.User{ID: "user-1"}, "cafe-1")

	assert.NoError(t, err)
	assert.True(t, favorited)
	favorites.AssertExpectations(t)
}

func TestFavoriteService_Toggle_RemovesWhenPresent(t *testing.T) {
	favorites := new(mockFavoriteRepository)
	cafes := new(mockCafeRepository)
	service := services.NewFavoriteService(favorites, cafes)

	favorites.On("Exists", mock.Anything, "user-1", "cafe-1").Return(true, nil)
	favorites.On("Remove", mock.Anything, "user-1", "cafe-1").Return(nil)

	favorited, err := service.Toggle(context.Background(), &entities.User{ID: "user-1"}, "cafe-1")

	assert.NoError(t, err)
	assert.False(t, favorited)
	favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestFavoriteService_ListCafes(t *testing.T) {
	favorites := new(mockFavoriteRepository)
	cafes := new(mockCafeRepository)
	service := services.NewFavoriteService(favorites, cafes)

	favorites.On("ListCafeIDs", mock.Anything, "user-1").Return([]string{"a", "b"}, nil)
	cafes.On("GetByIDs", mock.Anything, []string{"a", "b"}).
		Return([]*entities.Cafe{{ID: "a"}, {ID: "b"}}, nil)

	result, err := service.ListCafes(context.Background(), &entities.User{ID: "user-1"})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestFavoriteService_ListCafes_EmptySkipsLookup(t *testing.T) {
	favorites := new(mockFavoriteRepository)
	cafes := new(mockCafeRepository)
	service := services.NewFavoriteService(favorites, cafes)

	favorites.On("ListCafeIDs", mock.Anything, "user-1").Return([]string{}, nil)

	result, err := service.ListCafes(context.Background(), &entities.User{ID: "user-1"})

	assert.NoError(t, err)
	assert.Empty(t, result)
	cafes.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
