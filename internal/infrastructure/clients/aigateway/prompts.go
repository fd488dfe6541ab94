package aigateway

import (
	"encoding/json"
	"fmt"

	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

const moodSystemPrompt = `You are a sentiment analyzer for cafe reviews. Analyze the mood and atmosphere described in reviews and classify them into 4 categories: Calm (peaceful, quiet, relaxed), Lively (energetic, social, bustling), Romantic (intimate, cozy, date-worthy), and Study-Friendly (quiet, wifi, productive). Return ONLY a JSON object with scores for each mood (0-100) and the dominant mood.`

const recommendationSystemPrompt = `You are a personalized cafe recommendation system. Based on user preferences, favorites, and browsing history, provide intelligent cafe recommendations. Return ONLY a JSON object with a recommended_filters array containing suggested atmosphere, price_range, and mood preferences.`

func buildMoodUserPrompt(reviewText string) string {
	return fmt.Sprintf("Analyze these cafe reviews and return mood scores as JSON: %s", reviewText)
}

func buildRecommendationUserPrompt(profile providers.RecommendationProfile) (string, error) {
	favorites, err := json.Marshal(profile.Favorites)
	if err != nil {
		return "", fmt.Errorf("failed to encode favorites: %w", err)
	}
	views, err := json.Marshal(profile.RecentViews)
	if err != nil {
		return "", fmt.Errorf("failed to encode recent views: %w", err)
	}
	preferences, err := json.Marshal(profile.Preferences)
	if err != nil {
		return "", fmt.Errorf("failed to encode preferences: %w", err)
	}

	return fmt.Sprintf(
		"User data:\nFavorite cafes: %s\nPreferences: %s\nRecent views: %s\n\nRecommend what types of cafes this user would enjoy.",
		favorites, preferences, views,
	), nil
}
