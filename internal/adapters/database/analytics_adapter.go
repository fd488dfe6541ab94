package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// AnalyticsAdapter implements analytics event persistence in Postgres.
type AnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAnalyticsAdapter creates a new analytics adapter.
func NewAnalyticsAdapter(client *postgres.Client) repositories.AnalyticsRepository {
	return &AnalyticsAdapter{
		client: client,
		db:     goqu.Dialect("postgres").DB(client.DB()),
	}
}

// LogEvent appends an analytics event. Event data is stored as JSONB.
func (a *AnalyticsAdapter) LogEvent(ctx context.Context, event *entities.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, user_id, event_type, cafe_id, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	var data []byte
	if len(event.EventData) > 0 {
		data = []byte(event.EventData)
	}

	_, err := a.client.DB().ExecContext(ctx, query,
		event.ID, event.UserID, event.EventType, event.CafeID, data, event.CreatedAt)
	if err != nil {
		return apperrors.NewInternalError("failed to log analytics event", err)
	}

	return nil
}

// ListRecentByUser retrieves a user's most recent events of one type, newest first.
func (a *AnalyticsAdapter) ListRecentByUser(ctx context.Context, userID, eventType string, limit int) ([]*entities.AnalyticsEvent, error) {
	query, args, err := a.db.From("analytics_events").
		Select("id", "user_id", "event_type", "cafe_id", "event_data", "created_at").
		Where(goqu.C("user_id").Eq(userID), goqu.C("event_type").Eq(eventType)).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build analytics query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list analytics events", err)
	}
	defer rows.Close()

	events := []*entities.AnalyticsEvent{}
	for rows.Next() {
		event := &entities.AnalyticsEvent{}
		var data []byte
		if err := rows.Scan(&event.ID, &event.UserID, &event.EventType, &event.CafeID, &data, &event.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan analytics event", err)
		}
		if len(data) > 0 {
			event.EventData = data
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating analytics events", err)
	}

	return events, nil
}
