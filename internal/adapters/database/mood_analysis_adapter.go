package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/repositories"
	"github.com/moodbrew/cafe-discovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

// MoodAnalysisAdapter implements mood analysis persistence in Postgres.
type MoodAnalysisAdapter struct {
	client *postgres.Client
}

// NewMoodAnalysisAdapter creates a new mood analysis adapter.
func NewMoodAnalysisAdapter(client *postgres.Client) repositories.MoodAnalysisRepository {
	return &MoodAnalysisAdapter{client: client}
}

// GetByCafe retrieves the stored analysis for a cafe.
func (a *MoodAnalysisAdapter) GetByCafe(ctx context.Context, cafeID string) (*entities.MoodAnalysis, error) {
	query := `
		SELECT cafe_id, calm, lively, romantic, study_friendly, dominant_mood, review_count, analyzed_at
		FROM cafe_mood_analysis
		WHERE cafe_id = $1`

	analysis := &entities.MoodAnalysis{}
	err := a.client.DB().QueryRowContext(ctx, query, cafeID).Scan(
		&analysis.CafeID,
		&analysis.Scores.Calm,
		&analysis.Scores.Lively,
		&analysis.Scores.Romantic,
		&analysis.Scores.StudyFriendly,
		&analysis.DominantMood,
		&analysis.ReviewCount,
		&analysis.AnalyzedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("mood analysis not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get mood analysis", err)
	}

	return analysis, nil
}

// Upsert stores the analysis, replacing any previous one for the cafe.
func (a *MoodAnalysisAdapter) Upsert(ctx context.Context, analysis *entities.MoodAnalysis) error {
	query := `
		INSERT INTO cafe_mood_analysis (cafe_id, calm, lively, romantic, study_friendly, dominant_mood, review_count, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (cafe_id) DO UPDATE SET
			calm = EXCLUDED.calm,
			lively = EXCLUDED.lively,
			romantic = EXCLUDED.romantic,
			study_friendly = EXCLUDED.study_friendly,
			dominant_mood = EXCLUDED.dominant_mood,
			review_count = EXCLUDED.review_count,
			analyzed_at = EXCLUDED.analyzed_at`

	_, err := a.client.DB().ExecContext(ctx, query,
		analysis.CafeID,
		analysis.Scores.Calm,
		analysis.Scores.Lively,
		analysis.Scores.Romantic,
		analysis.Scores.StudyFriendly,
		analysis.DominantMood,
		analysis.ReviewCount,
		analysis.AnalyzedAt,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert mood analysis", err)
	}

	return nil
}
