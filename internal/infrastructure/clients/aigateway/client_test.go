package aigateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/pkg/config"
)

func newGatewayClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithOptions(&config.AIGatewayConfig{
		APIKey: "test-key",
		Model:  "test/model",
	}, server.URL, server.Client())
	require.NoError(t, err)
	return client
}

func chatReply(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func sampleReviews() []*entities.Review {
	now := time.Now()
	return []*entities.Review{
		{ID: "r1", CafeID: "cafe-1", Rating: 5, Content: "So quiet, perfect for reading", CreatedAt: now},
		{ID: "r2", CafeID: "cafe-1", Rating: 4, Content: "Calm vibe, soft jazz", CreatedAt: now},
	}
}

func TestClient_AnalyzeReviews_ParsesScores(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "So quiet, perfect for reading")

		fmt.Fprint(w, chatReply(`Here is the analysis: {"calm": 70, "lively": 5, "romantic": 5, "study_friendly": 20} hope that helps`))
	})

	scores, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	require.NoError(t, err)
	assert.Equal(t, entities.MoodScores{Calm: 70, Lively: 5, Romantic: 5, StudyFriendly: 20}, scores)
}

func TestClient_AnalyzeReviews_NestedAndCamelCaseKeys(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"mood_score": {"calm": 10, "lively": 60, "romantic": 10, "studyFriendly": 20}}`))
	})

	scores, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	require.NoError(t, err)
	assert.Equal(t, entities.MoodScores{Calm: 10, Lively: 60, Romantic: 10, StudyFriendly: 20}, scores)
}

func TestClient_AnalyzeReviews_MalformedOutputFallsBackToNeutral(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("I could not produce the requested format, sorry."))
	})

	scores, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	require.NoError(t, err)
	assert.Equal(t, entities.NeutralMoodScores(), scores)
}

func TestClient_AnalyzeReviews_ClampsOutOfRangeScores(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"calm": 250, "lively": -30, "romantic": 10, "study_friendly": 20}`))
	})

	scores, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	require.NoError(t, err)
	assert.Equal(t, 100, scores.Calm)
	assert.Equal(t, 0, scores.Lively)
}

func TestClient_AnalyzeReviews_NoReviewsSkipsGateway(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway should not be called for zero reviews")
	})

	scores, err := client.AnalyzeReviews(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, entities.NeutralMoodScores(), scores)
}

func TestClient_AnalyzeReviews_RateLimited(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	assert.ErrorIs(t, err, providers.ErrAIRateLimited)
}

func TestClient_AnalyzeReviews_CreditsExhausted(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	assert.ErrorIs(t, err, providers.ErrAICreditsExhausted)
}

func TestClient_RecommendFilters_ParsesPayload(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(`{"recommended_filters": [
			{"atmosphere": "calm", "price_range": "$$", "mood": "study_friendly"},
			{"atmosphere": "lively"}
		]}`))
	})

	filters, err := client.RecommendFilters(context.Background(), providers.RecommendationProfile{})

	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, "calm", filters[0].Atmosphere)
	assert.Equal(t, "$$", filters[0].PriceRange)
	assert.Equal(t, "study_friendly", filters[0].Mood)
	assert.Equal(t, "lively", filters[1].Atmosphere)
	assert.Empty(t, filters[1].Mood)
}

func TestClient_RecommendFilters_MalformedOutputYieldsEmptyList(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("no JSON here"))
	})

	filters, err := client.RecommendFilters(context.Background(), providers.RecommendationProfile{})

	require.NoError(t, err)
	assert.NotNil(t, filters)
	assert.Empty(t, filters)
}

func TestClient_MissingChoices(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := client.AnalyzeReviews(context.Background(), sampleReviews())

	assert.Error(t, err)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"embedded in prose", `Sure! {"a": 1} Done.`, `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"braces inside strings", `{"a": "закрыто }{"}`, `{"a": "закрыто }{"}`, true},
		{"escaped quote in string", `{"a": "say \"}\" loud"}`, `{"a": "say \"}\" loud"}`, true},
		{"no object", "just text", "", false},
		{"unbalanced", `{"a": 1`, "", false},
		{"invalid json", `{a: 1}`, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, string(got))
			}
		})
	}
}
