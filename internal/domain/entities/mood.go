package entities

import "time"

// Mood category names used in classification results.
const (
	MoodCalm          = "calm"
	MoodLively        = "lively"
	MoodRomantic      = "romantic"
	MoodStudyFriendly = "study_friendly"
	MoodNeutral       = "neutral"
)

// MoodScores holds per-category sentiment scores on a 0-100 scale.
type MoodScores struct {
	Calm          int `json:"calm"`
	Lively        int `json:"lively"`
	Romantic      int `json:"romantic"`
	StudyFriendly int `json:"study_friendly"`
}

// NeutralMoodScores is the equal-weighted default used when no reviews exist
// or the AI response cannot be parsed.
func NeutralMoodScores() MoodScores {
	return MoodScores{Calm: 25, Lively: 25, Romantic: 25, StudyFriendly: 25}
}

// Dominant returns the highest-scoring mood category. Equal-weighted scores
// are reported as neutral.
func (s MoodScores) Dominant() string {
	dominant := MoodCalm
	max := s.Calm
	for _, c := range []struct {
		name  string
		score int
	}{
		{MoodLively, s.Lively},
		{MoodRomantic, s.Romantic},
		{MoodStudyFriendly, s.StudyFriendly},
	} {
		if c.score > max {
			dominant = c.name
			max = c.score
		}
	}
	if s.Calm == s.Lively && s.Lively == s.Romantic && s.Romantic == s.StudyFriendly {
		return MoodNeutral
	}
	return dominant
}

// MoodAnalysis is the stored AI sentiment classification for a cafe's reviews.
type MoodAnalysis struct {
	CafeID       string     `json:"cafe_id" db:"cafe_id"`
	Scores       MoodScores `json:"mood_score" db:"-"`
	DominantMood string     `json:"dominant_mood" db:"dominant_mood"`
	ReviewCount  int        `json:"review_count" db:"review_count"`
	AnalyzedAt   time.Time  `json:"analyzed_at" db:"analyzed_at"`

	// Message carries an informational note for empty-review analyses.
	Message string `json:"message,omitempty" db:"-"`
}

// IsFresh reports whether the analysis is recent enough to reuse.
func (m *MoodAnalysis) IsFresh(maxAge time.Duration, now time.Time) bool {
	return now.Sub(m.AnalyzedAt) < maxAge
}
