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

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.Dialect("postgres").DB(client.DB()),
	}
}

// Create appends a review.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"user_id":    review.UserID,
		"cafe_id":    review.CafeID,
		"rating":     review.Rating,
		"title":      sql.NullString{String: review.Title, Valid: review.Title != ""},
		"content":    sql.NullString{String: review.Content, Valid: review.Content != ""},
		"created_at": review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// ListByCafe retrieves a cafe's reviews, newest first.
func (a *ReviewAdapter) ListByCafe(ctx context.Context, cafeID string) ([]*entities.Review, error) {
	query, args, err := a.db.From("reviews").
		Select("id", "user_id", "cafe_id", "rating", "title", "content", "created_at").
		Where(goqu.C("cafe_id").Eq(cafeID)).
		Order(goqu.C("created_at").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review := &entities.Review{}
		var title, content sql.NullString
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.CafeID,
			&review.Rating,
			&title,
			&content,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.Title = title.String
		review.Content = content.String
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// RatingStats returns the review count and mean rating for a cafe.
func (a *ReviewAdapter) RatingStats(ctx context.Context, cafeID string) (int, float64, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE cafe_id = $1`

	var count int
	var average float64
	if err := a.client.DB().QueryRowContext(ctx, query, cafeID).Scan(&count, &average); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to compute rating stats", err)
	}

	return count, average, nil
}
