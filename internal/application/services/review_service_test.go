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

func TestReviewService_Create_RejectsAnonymousBeforeStoreCalls(t *testing.T) {
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	service := services.NewReviewService(reviews, cafes, nil)

	_, err := service.Create(context.Background(), nil, "cafe-1", 5, "", "great")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	cafes.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_ValidatesRatingRange(t *testing.T) {
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	service := services.NewReviewService(reviews, cafes, nil)

	user := &entities.User{ID: "user-1"}

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), user, "cafe-1", rating, "", "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "rating %d", rating)
	}
}

func TestReviewService_Create_UnknownCafeRejected(t *testing.T) {
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	service := services.NewReviewService(reviews, cafes, nil)

	cafes.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("cafe with id missing not found"))

	_, err := service.Create(context.Background(), &entities.User{ID: "user-1"}, "missing", 4, "", "")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_RefreshesRatingAggregate(t *testing.T) {
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	service := services.NewReviewService(reviews, cafes, nil)

	cafes.On("GetByID", mock.Anything, "cafe-1").Return(&entities.Cafe{ID: "cafe-1"}, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.ID != "" && r.UserID == "user-1" && r.CafeID == "cafe-1" && r.Rating == 4
	})).Return(nil)
	reviews.On("RatingStats", mock.Anything, "cafe-1").Return(3, 4.2, nil)
	cafes.On("UpdateRating", mock.Anything, "cafe-1", mock.MatchedBy(func(rating *float64) bool {
		return rating != nil && *rating == 4.2
	}), 3).Return(nil)

	review, err := service.Create(context.Background(), &entities.User{ID: "user-1"}, "cafe-1", 4, "Solid", "Good espresso")

	assert.NoError(t, err)
	assert.Equal(t, "Solid", review.Title)
	cafes.AssertExpectations(t)
	reviews.AssertExpectations(t)
}

func TestReviewService_Create_SurvivesAggregateRefreshFailure(t *testing.T) {
	reviews := new(mockReviewRepository)
	cafes := new(mockCafeRepository)
	service := services.NewReviewService(reviews, cafes, nil)

	cafes.On("GetByID", mock.Anything, "cafe-1").Return(&entities.Cafe{ID: "cafe-1"}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("RatingStats", mock.Anything, "cafe-1").
		Return(0, 0.0, apperrors.NewInternalError("stats query failed", nil))

	review, err := service.Create(context.Background(), &entities.User{ID: "user-1"}, "cafe-1", 5, "", "")

	// The review is stored even when the aggregate refresh fails.
	assert.NoError(t, err)
	assert.NotNil(t, review)
}
