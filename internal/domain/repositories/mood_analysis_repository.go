package repositories

import (
	"context"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// MoodAnalysisRepository defines the interface for the mood-analysis cache.
type MoodAnalysisRepository interface {
	// GetByCafe retrieves the stored analysis for a cafe
	GetByCafe(ctx context.Context, cafeID string) (*entities.MoodAnalysis, error)

	// Upsert stores an analysis keyed by cafe id
	Upsert(ctx context.Context, analysis *entities.MoodAnalysis) error
}
