package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

var cafeColumns = []any{
	"id", "name", "description", "address", "latitude", "longitude",
	"price_range", "rating", "review_count", "crowd_level", "is_open",
	"image_url", "wifi_speed", "phone", "website", "mood_classification",
	"atmosphere", "specialties", "amenities", "created_at", "updated_at",
}

// CafeAdapter implements the CafeRepository interface
type CafeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCafeAdapter creates a new cafe adapter
func NewCafeAdapter(client *postgres.Client) repositories.CafeRepository {
	return &CafeAdapter{
		client: client,
		db:     goqu.Dialect("postgres").DB(client.DB()),
	}
}

// Create creates a new cafe
func (a *CafeAdapter) Create(ctx context.Context, cafe *entities.Cafe) error {
	query, args, err := a.db.Insert("cafes").Rows(cafeRecord(cafe)).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cafe insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create cafe", err)
	}

	return nil
}

// GetByID retrieves a cafe by ID
func (a *CafeAdapter) GetByID(ctx context.Context, id string) (*entities.Cafe, error) {
	query, args, err := a.db.From("cafes").
		Select(cafeColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cafe select query", err)
	}

	cafe, err := scanCafe(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cafe with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get cafe", err)
	}

	return cafe, nil
}

// GetByIDs retrieves multiple cafes by their IDs
func (a *CafeAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Cafe, error) {
	if len(ids) == 0 {
		return []*entities.Cafe{}, nil
	}

	query, args, err := a.db.From("cafes").
		Select(cafeColumns...).
		Where(goqu.C("id").In(ids)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cafe select query", err)
	}

	return a.queryCafes(ctx, query, args)
}

// Update updates a cafe
func (a *CafeAdapter) Update(ctx context.Context, cafe *entities.Cafe) error {
	cafe.UpdatedAt = time.Now()

	record := cafeRecord(cafe)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("cafes").
		Set(record).
		Where(goqu.C("id").Eq(cafe.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cafe update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update cafe", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("cafe with id %s not found", cafe.ID))
}

// UpdateRating replaces the derived rating statistics for a cafe
func (a *CafeAdapter) UpdateRating(ctx context.Context, id string, rating *float64, reviewCount int) error {
	query := `UPDATE cafes SET rating = $2, review_count = $3, updated_at = $4 WHERE id = $1`

	result, err := a.client.DB().ExecContext(ctx, query, id, nullFloat(rating), reviewCount, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to update cafe rating", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("cafe with id %s not found", id))
}

// UpdateMoodClassification sets the dominant mood label for a cafe
func (a *CafeAdapter) UpdateMoodClassification(ctx context.Context, id string, mood string) error {
	query := `UPDATE cafes SET mood_classification = $2, updated_at = $3 WHERE id = $1`

	result, err := a.client.DB().ExecContext(ctx, query, id, mood, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to update cafe mood", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("cafe with id %s not found", id))
}

// List retrieves cafes matching the pushed-down filter conditions, ordered by
// descending rating.
func (a *CafeAdapter) List(ctx context.Context, filter repositories.CafeFilter) ([]*entities.Cafe, error) {
	ds := a.db.From("cafes").Select(cafeColumns...)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("description").ILike(pattern),
			goqu.C("address").ILike(pattern),
		))
	}

	if filter.Location != "" {
		ds = ds.Where(goqu.C("address").ILike("%" + filter.Location + "%"))
	}

	if len(filter.Moods) > 0 {
		ds = ds.Where(goqu.L("atmosphere && ?", pq.Array(filter.Moods)))
	}

	if filter.PriceTier != "" {
		ds = ds.Where(goqu.C("price_range").Eq(filter.PriceTier))
	}

	if filter.IsOpen != nil {
		ds = ds.Where(goqu.C("is_open").Eq(*filter.IsOpen))
	}

	ds = ds.Order(goqu.C("rating").Desc().NullsLast())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cafe list query", err)
	}

	return a.queryCafes(ctx, query, args)
}

func (a *CafeAdapter) queryCafes(ctx context.Context, query string, args []any) ([]*entities.Cafe, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cafes", err)
	}
	defer rows.Close()

	cafes := []*entities.Cafe{}
	for rows.Next() {
		cafe, err := scanCafe(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan cafe", err)
		}
		cafes = append(cafes, cafe)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating cafes", err)
	}

	return cafes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCafe(row rowScanner) (*entities.Cafe, error) {
	cafe := &entities.Cafe{}
	var rating sql.NullFloat64

	err := row.Scan(
		&cafe.ID,
		&cafe.Name,
		&cafe.Description,
		&cafe.Address,
		&cafe.Location.Latitude,
		&cafe.Location.Longitude,
		&cafe.PriceRange,
		&rating,
		&cafe.ReviewCount,
		&cafe.CrowdLevel,
		&cafe.IsOpen,
		&cafe.ImageURL,
		&cafe.WifiSpeed,
		&cafe.Phone,
		&cafe.Website,
		&cafe.MoodClassification,
		pq.Array(&cafe.Atmosphere),
		pq.Array(&cafe.Specialties),
		pq.Array(&cafe.Amenities),
		&cafe.CreatedAt,
		&cafe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		cafe.Rating = &rating.Float64
	}

	return cafe, nil
}

func cafeRecord(cafe *entities.Cafe) goqu.Record {
	return goqu.Record{
		"id":                  cafe.ID,
		"name":                cafe.Name,
		"description":         cafe.Description,
		"address":             cafe.Address,
		"latitude":            cafe.Location.Latitude,
		"longitude":           cafe.Location.Longitude,
		"price_range":         cafe.PriceRange,
		"rating":              nullFloat(cafe.Rating),
		"review_count":        cafe.ReviewCount,
		"crowd_level":         cafe.CrowdLevel,
		"is_open":             cafe.IsOpen,
		"image_url":           cafe.ImageURL,
		"wifi_speed":          cafe.WifiSpeed,
		"phone":               cafe.Phone,
		"website":             cafe.Website,
		"mood_classification": cafe.MoodClassification,
		"atmosphere":          pq.Array(cafe.Atmosphere),
		"specialties":         pq.Array(cafe.Specialties),
		"amenities":           pq.Array(cafe.Amenities),
		"created_at":          cafe.CreatedAt,
		"updated_at":          cafe.UpdatedAt,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func requireRowsAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMessage)
	}
	return nil
}
