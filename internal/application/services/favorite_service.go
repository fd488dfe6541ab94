package services

import (
	"context"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// FavoriteService handles saving and unsaving cafes. A favorite's existence
// is its only state, so toggling is one membership check plus one write.
type FavoriteService struct {
	favorites repositories.FavoriteRepository
	cafes     repositories.CafeRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repositories.FavoriteRepository, cafes repositories.CafeRepository) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		cafes:     cafes,
	}
}

// Toggle flips the favorite state for (user, cafe) and reports the new state.
// Unauthenticated calls are rejected before any store call.
func (s *FavoriteService) Toggle(ctx context.Context, user *entities.User, cafeID string) (favorited bool, err error) {
	if user == nil || user.ID == "" {
		return false, apperrors.NewUnauthorizedError("sign in to save favorites")
	}

	exists, err := s.favorites.Exists(ctx, user.ID, cafeID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.favorites.Remove(ctx, user.ID, cafeID); err != nil {
			return true, err
		}
		return false, nil
	}

	favorite := &entities.Favorite{
		UserID:    user.ID,
		CafeID:    cafeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.favorites.Add(ctx, favorite); err != nil {
		return false, err
	}
	return true, nil
}

// ListCafes retrieves the user's favorited cafes.
func (s *FavoriteService) ListCafes(ctx context.Context, user *entities.User) ([]*entities.Cafe, error) {
	if user == nil || user.ID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to view favorites")
	}

	ids, err := s.favorites.ListCafeIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entities.Cafe{}, nil
	}

	return s.cafes.GetByIDs(ctx, ids)
}

// ListCafeIDs retrieves the ids of the user's favorited cafes.
func (s *FavoriteService) ListCafeIDs(ctx context.Context, user *entities.User) ([]string, error) {
	if user == nil || user.ID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to view favorites")
	}
	return s.favorites.ListCafeIDs(ctx, user.ID)
}
