package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	apperrors "github.com/moodbrew/cafe-discovery/pkg/errors"
)

func TestMoodAnalysisAdapter_GetByCafe(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewMoodAnalysisAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"cafe_id", "calm", "lively", "romantic", "study_friendly",
		"dominant_mood", "review_count", "analyzed_at",
	}).AddRow("cafe-1", 70, 10, 10, 10, "calm", 12, now)

	mock.ExpectQuery(`SELECT cafe_id, calm, lively, romantic, study_friendly, dominant_mood, review_count, analyzed_at`).
		WithArgs("cafe-1").
		WillReturnRows(rows)

	analysis, err := adapter.GetByCafe(context.Background(), "cafe-1")

	require.NoError(t, err)
	assert.Equal(t, entities.MoodScores{Calm: 70, Lively: 10, Romantic: 10, StudyFriendly: 10}, analysis.Scores)
	assert.Equal(t, "calm", analysis.DominantMood)
	assert.Equal(t, 12, analysis.ReviewCount)
}

func TestMoodAnalysisAdapter_GetByCafe_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewMoodAnalysisAdapter(client)

	mock.ExpectQuery(`SELECT cafe_id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"cafe_id"}))

	_, err := adapter.GetByCafe(context.Background(), "missing")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestMoodAnalysisAdapter_Upsert(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewMoodAnalysisAdapter(client)

	mock.ExpectExec(`INSERT INTO cafe_mood_analysis .+ ON CONFLICT \(cafe_id\) DO UPDATE`).
		WithArgs("cafe-1", 70, 10, 10, 10, "calm", 12, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Upsert(context.Background(), &entities.MoodAnalysis{
		CafeID:       "cafe-1",
		Scores:       entities.MoodScores{Calm: 70, Lively: 10, Romantic: 10, StudyFriendly: 10},
		DominantMood: "calm",
		ReviewCount:  12,
		AnalyzedAt:   time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
