package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	tsclient "github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/typesense"
)

const collectionName = "cafes"

// TypesenseAdapter implements cafe geo-search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements CafeSearchRepository
var _ repositories.CafeSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "address", Type: "string"},
			{Name: "price_range", Type: "string", Facet: pointer.True()},
			{Name: "is_open", Type: "bool"},
			{Name: "location", Type: "geopoint"},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a cafe
func (a *TypesenseAdapter) Index(ctx context.Context, cafe *entities.Cafe) error {
	rating := 0.0
	if cafe.Rating != nil {
		rating = *cafe.Rating
	}

	document := map[string]interface{}{
		"id":           cafe.ID,
		"name":         cafe.Name,
		"description":  cafe.Description,
		"address":      cafe.Address,
		"price_range":  cafe.PriceRange,
		"is_open":      cafe.IsOpen,
		"location":     []float64{cafe.Location.Latitude, cafe.Location.Longitude},
		"rating":       rating,
		"review_count": cafe.ReviewCount,
		"created_at":   cafe.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index cafe: %w", err)
	}

	return nil
}

// Delete removes a cafe from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete cafe from index: %w", err)
	}
	return nil
}

// Search finds cafes near a coordinate, optionally narrowed by a text query
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.CafeSearchParams) ([]*entities.Cafe, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	query := params.Query
	if query == "" {
		query = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,description,address"),
		FilterBy: pointer.String(fmt.Sprintf("location:(%f, %f, %f km)", params.Latitude, params.Longitude, params.RadiusKm)),
		SortBy:   pointer.String(fmt.Sprintf("location(%f, %f):asc", params.Latitude, params.Longitude)),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search cafes: %w", err)
	}

	cafes := []*entities.Cafe{}
	if result.Hits == nil {
		return cafes, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		var lat, lon float64
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			lat, _ = loc[0].(float64)
			lon, _ = loc[1].(float64)
		}

		// Typesense returns map[string]interface{}; reconstruct the slim
		// search projection and let callers hydrate full rows from the DB.
		cafe := &entities.Cafe{
			ID:       doc["id"].(string),
			Name:     doc["name"].(string),
			Location: entities.Location{Latitude: lat, Longitude: lon},
		}
		if val, ok := doc["description"].(string); ok {
			cafe.Description = val
		}
		if val, ok := doc["address"].(string); ok {
			cafe.Address = val
		}
		if val, ok := doc["price_range"].(string); ok {
			cafe.PriceRange = val
		}
		if val, ok := doc["is_open"].(bool); ok {
			cafe.IsOpen = val
		}
		if val, ok := doc["rating"].(float64); ok && val > 0 {
			rating := val
			cafe.Rating = &rating
		}
		if val, ok := doc["review_count"].(float64); ok {
			cafe.ReviewCount = int(val)
		}

		cafes = append(cafes, cafe)
	}

	return cafes, nil
}
